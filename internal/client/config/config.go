// Package config loads runtime configuration for the AlumniLink CLI client.
//
// Sources, later ones taking precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment, optionally seeded from a dotenv file (-env/-envfile, or
//     ./.env when present).
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the AlumniLink API
//	-t int      request timeout (seconds)
//	-f string   path of the local database file
//	-l string   log level
//
// JSON example:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "15s",
//	  "db_path": "alumnilink.db",
//	  "log_level": "warn"
//	}
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DBPath         string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.DBPath = "alumnilink.db"
	c.LogLevel = "warn"
}

// Validate reports settings the client cannot work with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// LoadConfig constructs a Config from defaults, JSON, the environment and
// flags. Broken sources panic.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
