package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recipebook/internal/flagx"
	"github.com/dmitrijs2005/recipebook/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from zero values so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
	SessionBackend   *string         `json:"session_backend"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisPassword    *string         `json:"redis_password"`
	RedisDB          *int            `json:"redis_db"`
	CookieName       *string         `json:"cookie_name"`
	CookieDomain     *string         `json:"cookie_domain"`
	CookieSecure     *bool           `json:"cookie_secure"`
	LogBackend       *string         `json:"log_backend"`
	LogLevel         *string         `json:"log_level"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c / -config into config.
// Nothing happens when no file is given. A missing or malformed file panics.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	assign(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	assign(&config.DatabaseDSN, c.DatabaseDSN)
	assign(&config.SecretKey, c.SecretKey)
	assign(&config.SessionBackend, c.SessionBackend)
	assign(&config.RedisAddr, c.RedisAddr)
	assign(&config.RedisPassword, c.RedisPassword)
	assign(&config.RedisDB, c.RedisDB)
	assign(&config.CookieName, c.CookieName)
	assign(&config.CookieDomain, c.CookieDomain)
	assign(&config.CookieSecure, c.CookieSecure)
	assign(&config.LogBackend, c.LogBackend)
	assign(&config.LogLevel, c.LogLevel)

	if c.SessionTTL != nil {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
