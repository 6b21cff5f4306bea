package config

import (
	"errors"
	"os"
	"strings"

	"github.com/dmitrijs2005/alumnilink/internal/envx"
	"github.com/dmitrijs2005/alumnilink/internal/flagx"
)

// Environment variables read by parseEnv. JWT_SECRET and JWT_EXPIRE keep the
// names used by the web deployment so one .env serves both.
const (
	EnvHTTPAddr         = "ALUMNILINK_HTTP_ADDR"
	EnvDatabaseDSN      = "ALUMNILINK_DATABASE_DSN"
	EnvSecretKey        = "JWT_SECRET"
	EnvTokenValidity    = "JWT_EXPIRE"
	EnvPurgeInterval    = "ALUMNILINK_REVOCATION_PURGE_INTERVAL"
	EnvLogLevel         = "ALUMNILINK_LOG_LEVEL"
	EnvCORSAllowOrigins = "ALUMNILINK_CORS_ALLOW_ORIGINS"
	EnvS3RootUser       = "ALUMNILINK_S3_ROOT_USER"
	EnvS3RootPassword   = "ALUMNILINK_S3_ROOT_PASSWORD"
	EnvS3Bucket         = "ALUMNILINK_S3_BUCKET"
	EnvS3Region         = "ALUMNILINK_S3_REGION"
	EnvS3BaseEndpoint   = "ALUMNILINK_S3_BASE_ENDPOINT"
	EnvAvatarURLTTL     = "ALUMNILINK_AVATAR_URL_VALIDITY"
)

// parseEnv loads the dotenv file (from -env/-envfile, or ./.env when present)
// and overlays every variable that is set.
func parseEnv(config *Config) error {
	if err := envx.Load(flagx.EnvFileFlags()); err != nil {
		return err
	}

	envx.String(EnvHTTPAddr, &config.HTTPAddr)
	envx.String(EnvDatabaseDSN, &config.DatabaseDSN)
	envx.String(EnvSecretKey, &config.SecretKey)
	envx.String(EnvLogLevel, &config.LogLevel)
	envx.String(EnvS3RootUser, &config.S3RootUser)
	envx.String(EnvS3RootPassword, &config.S3RootPassword)
	envx.String(EnvS3Bucket, &config.S3Bucket)
	envx.String(EnvS3Region, &config.S3Region)
	envx.String(EnvS3BaseEndpoint, &config.S3BaseEndpoint)

	if v := os.Getenv(EnvCORSAllowOrigins); v != "" {
		config.CORSAllowOrigins = splitList(v)
	}

	return errors.Join(
		envx.Duration(EnvTokenValidity, &config.TokenValidityDuration),
		envx.Duration(EnvPurgeInterval, &config.RevocationPurgeInterval),
		envx.Duration(EnvAvatarURLTTL, &config.AvatarURLValidity),
	)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
