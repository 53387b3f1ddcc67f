// Package config loads runtime configuration for the Resilia CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via --config/-c. Files ending in .yaml or
//     .yml are parsed as YAML, everything else as JSON.
//  3. Optional dotenv file (--env-file, default ".env"). Variables already
//     present in the environment are not overridden by it.
//  4. RESILIA_* environment variables.
//  5. Command-line flags that were set explicitly.
//
// Supported flags
//
//	-c, --config string     path to a JSON or YAML config file
//	    --env-file string   dotenv file to load (default ".env")
//	    --db string         sqlite database file
//	    --log-level string  debug, info, warn or error
//	    --log-format string text or json
//	    --date-layout string Go layout for display dates
//	    --recent int        number of conversations in the recent view
//
// # File schema
//
//	{
//	  "db_path": "data/resilia.db",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "date_layout": "1/2/2006",
//	  "recent_limit": 3
//	}
//
// Environment variables use the same names upper-cased with the RESILIA_
// prefix, e.g. RESILIA_DB_PATH.
package config
