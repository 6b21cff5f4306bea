package config

import (
	"github.com/dmitrijs2005/alumnilink/internal/envx"
	"github.com/dmitrijs2005/alumnilink/internal/flagx"
)

const (
	EnvBaseURL        = "ALUMNILINK_API_URL"
	EnvRequestTimeout = "ALUMNILINK_REQUEST_TIMEOUT"
	EnvDBPath         = "ALUMNILINK_DB_PATH"
	EnvLogLevel       = "ALUMNILINK_CLIENT_LOG_LEVEL"
)

func parseEnv(cfg *Config) error {
	if err := envx.Load(flagx.EnvFileFlags()); err != nil {
		return err
	}

	envx.String(EnvBaseURL, &cfg.BaseURL)
	envx.String(EnvDBPath, &cfg.DBPath)
	envx.String(EnvLogLevel, &cfg.LogLevel)

	return envx.Duration(EnvRequestTimeout, &cfg.RequestTimeout)
}
