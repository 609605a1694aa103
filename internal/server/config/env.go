package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded into the process environment when present.
// Variables already set in the environment win over the file.
var dotenvFile = ".env"

// parseEnv overlays Config with environment variables.
//
//	RECIPEBOOK_ADDR  DATABASE_DSN  SECRET_KEY  SESSION_TTL (duration)
//	SESSION_BACKEND  REDIS_ADDR  REDIS_PASSWORD  REDIS_DB
//	COOKIE_DOMAIN  COOKIE_SECURE  LOG_BACKEND  LOG_LEVEL
//
// Malformed numeric, boolean or duration values are ignored.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotenvFile); err == nil {
		_ = godotenv.Load(dotenvFile)
	}

	setString(&config.EndpointAddrHTTP, "RECIPEBOOK_ADDR")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.SessionBackend, "SESSION_BACKEND")
	setString(&config.RedisAddr, "REDIS_ADDR")
	setString(&config.RedisPassword, "REDIS_PASSWORD")
	setString(&config.CookieDomain, "COOKIE_DOMAIN")
	setString(&config.LogBackend, "LOG_BACKEND")
	setString(&config.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RedisDB = n
		}
	}
	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.CookieSecure = b
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
