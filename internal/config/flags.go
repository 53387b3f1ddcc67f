package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig      = "config"
	flagEnvFile     = "env-file"
	flagDB          = "db"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagDateLayout  = "date-layout"
	flagRecentLimit = "recent"
)

// AddFlags registers the configuration flags on fs. Flag defaults are empty
// so that only explicitly set flags override the other sources.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(flagEnvFile, ".env", "dotenv file to load")
	fs.String(flagDB, "", "sqlite database file")
	fs.String(flagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(flagLogFormat, "", "log format: text or json")
	fs.String(flagDateLayout, "", "Go time layout for display dates")
	fs.Int(flagRecentLimit, 0, "number of conversations in the recent view")
}

// parseFlags copies every flag the user set on fs into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{flagDB, &cfg.DBPath},
		{flagLogLevel, &cfg.LogLevel},
		{flagLogFormat, &cfg.LogFormat},
		{flagDateLayout, &cfg.DateLayout},
	}
	for _, s := range strs {
		if !fs.Changed(s.name) {
			continue
		}
		v, err := fs.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if fs.Changed(flagRecentLimit) {
		v, err := fs.GetInt(flagRecentLimit)
		if err != nil {
			return err
		}
		cfg.RecentLimit = v
	}
	return nil
}
