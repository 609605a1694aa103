package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/flagx"
)

// parseFlags overlays config with command-line flags.
//
//	-a string   HTTP bind address (e.g. ":5555")
//	-d string   PostgreSQL DSN
//	-s string   session signing key
//	-t int      session lifetime, minutes
//	-b string   session backend: postgres, redis or memory
//	-r string   redis address
//	-m string   session cookie domain
//	-l string   log backend: slog or logrus
//
// Only these flags are read from os.Args; -c/-config belongs to parseJson.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-b", "-r", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session lifetime (in minutes)")
	fs.StringVar(&config.SessionBackend, "b", config.SessionBackend, "session backend (postgres|redis|memory)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.CookieDomain, "m", config.CookieDomain, "session cookie domain")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog|logrus)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
		}
	})
}
