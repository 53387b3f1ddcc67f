package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of every environment variable read by LoadConfig.
const EnvPrefix = "RESILIA"

// Config holds runtime settings for the Resilia CLI.
type Config struct {
	// DBPath is the sqlite file backing the device store.
	DBPath string `json:"db_path" yaml:"db_path" envconfig:"DB_PATH"`

	LogLevel  string `json:"log_level" yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" envconfig:"LOG_FORMAT"`

	// DateLayout formats the display date of mood and conversation entries.
	DateLayout string `json:"date_layout" yaml:"date_layout" envconfig:"DATE_LAYOUT"`

	// RecentLimit is the size of the recent conversations view.
	RecentLimit int `json:"recent_limit" yaml:"recent_limit" envconfig:"RECENT_LIMIT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "data/resilia.db"
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
	c.DateLayout = "1/2/2006"
	c.RecentLimit = 3
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db path is empty"))
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.DateLayout == "" {
		errs = append(errs, errors.New("date layout is empty"))
	}
	if c.RecentLimit < 1 {
		errs = append(errs, fmt.Errorf("recent limit must be positive, got %d", c.RecentLimit))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays the config
// file, the dotenv file, the environment and finally the flags in fs that
// were set explicitly. fs must have been prepared with AddFlags; nil skips
// the flag-driven sources.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	var configFile, envFile string
	if fs != nil {
		configFile, _ = fs.GetString(flagConfig)
		envFile, _ = fs.GetString(flagEnvFile)
	}

	if err := parseFile(cfg, configFile); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envFile); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := parseFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
