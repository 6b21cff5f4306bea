// Package config handles configuration for the server component: defaults,
// a JSON overlay, the environment (optionally seeded from a dotenv file) and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
)

// Config holds runtime settings for the AlumniLink server.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects in-memory storage.
//   - SecretKey: HMAC secret for signing credentials (HS256). No default.
//   - TokenValidityDuration: lifetime of issued credentials.
//   - RevocationPurgeInterval: how often expired logout revocations are dropped.
//   - LogLevel: debug, info, warn or error.
//   - CORSAllowOrigins: browser origins allowed to call the API.
//   - S3*: object storage for profile avatars. Empty S3Bucket disables it.
//   - AvatarURLValidity: lifetime of presigned avatar URLs.
type Config struct {
	HTTPAddr                string
	DatabaseDSN             string
	SecretKey               string
	TokenValidityDuration   time.Duration
	RevocationPurgeInterval time.Duration
	LogLevel                string
	CORSAllowOrigins        []string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	AvatarURLValidity       time.Duration
}

// LoadDefaults populates Config with development defaults. The signing secret
// is intentionally left empty and must be supplied.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenValidityDuration = 30 * 24 * time.Hour
	c.RevocationPurgeInterval = time.Hour
	c.LogLevel = "info"
	c.CORSAllowOrigins = []string{"http://localhost:3000"}
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.AvatarURLValidity = 15 * time.Minute
}

// Validate reports configuration errors that make the server unusable.
// A missing signing secret wraps common.ErrMissingSecret.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, common.ErrMissingSecret)
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	return errors.Join(errs...)
}

// StorageEnabled reports whether avatar object storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// Unreadable sources panic, as a broken configuration is fatal at start-up.
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
