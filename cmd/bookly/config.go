package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/eniolaomotee/Bookly/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultJWTAlgorithm = "HS256"
	defaultDomain       = "localhost:8000"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Redis server holding the token blocklist, as redis:// url
	RedisURL string

	// Secret key
	// Session and url tokens are signed symmetrically with this key
	SecretKey string

	// JWT MAC algorithm
	JWTAlgorithm string

	// Domain used to build verification and password reset links
	Domain string

	// SMTP relay address (host:port) and the From address.
	// When SMTPAddr is empty outgoing mail is written to the log instead.
	SMTPAddr string
	SMTPFrom string

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:     defaultLoggingLevel,
		ListenAddr:   defaultListenAddr,
		Environment:  defaultEnvironment,
		JWTAlgorithm: defaultJWTAlgorithm,
		Domain:       defaultDomain,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":   setString(&c.ListenAddr),
		"DATABASE_URI":  setString(&c.DatabaseDSN),
		"REDIS_URL":     setString(&c.RedisURL),
		"SECRET_KEY":    setString(&c.SecretKey),
		"JWT_ALGORITHM": setString(&c.JWTAlgorithm),
		"DOMAIN":        setString(&c.Domain),
		"SMTP_ADDR":     setString(&c.SMTPAddr),
		"SMTP_FROM":     setString(&c.SMTPFrom),
		"LOG_LEVEL":     setString(&c.LogLevel),
		"ENVIRONMENT":   setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("bookly", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.RedisURL, "redis", "r", c.RedisURL, "Redis url for the token blocklist")
	fs.StringVarP(&c.SecretKey, "secret-key", "s", c.SecretKey, "Secret key")
	fs.StringVar(&c.JWTAlgorithm, "jwt-algorithm", c.JWTAlgorithm, "JWT signing algorithm")
	fs.StringVar(&c.Domain, "domain", c.Domain, "Domain used in mailed links")
	fs.StringVar(&c.SMTPAddr, "smtp-addr", c.SMTPAddr, "SMTP relay address (host:port)")
	fs.StringVar(&c.SMTPFrom, "smtp-from", c.SMTPFrom, "From address for outgoing mail")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (development, production)")

	return fs.Parse(args)
}
