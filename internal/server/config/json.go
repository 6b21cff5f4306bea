package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/alumnilink/internal/flagx"
	"github.com/dmitrijs2005/alumnilink/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so "720h", "30d" and integer nanoseconds are all accepted.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	HTTPAddr                string         `json:"http_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	TokenValidityDuration   timex.Duration `json:"token_validity_duration"`
	RevocationPurgeInterval timex.Duration `json:"revocation_purge_interval"`
	LogLevel                string         `json:"log_level"`
	CORSAllowOrigins        []string       `json:"cors_allow_origins"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
	AvatarURLValidity       timex.Duration `json:"avatar_url_validity"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens; unreadable or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RevocationPurgeInterval.Duration != 0 {
		config.RevocationPurgeInterval = c.RevocationPurgeInterval.Duration
	}
	if c.AvatarURLValidity.Duration != 0 {
		config.AvatarURLValidity = c.AvatarURLValidity.Duration
	}
	if len(c.CORSAllowOrigins) > 0 {
		config.CORSAllowOrigins = c.CORSAllowOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
