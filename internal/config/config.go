package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string

	DBDriver string // sqlite or postgres
	DBDSN    string

	SessionSecret string
	SessionStore  string // cookie or memory
	SessionMaxAge int    // seconds
	SessionSecure bool

	LogLevel  string
	LogFormat string

	SeedSampleData     bool
	OwnerPassword      string
	AccountantPassword string

	LegacyPasswordDigest bool
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the process environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getenv("APP_ENV", "development"),
		ServerPort:         getenv("SERVER_PORT", "8080"),
		DBDriver:           strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:              getenv("DB_DSN", "invoices.db"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		SessionStore:       strings.ToLower(getenv("SESSION_STORE", "cookie")),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		OwnerPassword:      getenv("OWNER_PASSWORD", "owner123"),
		AccountantPassword: getenv("ACCOUNTANT_PASSWORD", "accountant123"),
	}

	var errs []error
	var err error
	if cfg.SessionMaxAge, err = getInt("SESSION_MAX_AGE", 86400); err != nil {
		errs = append(errs, err)
	}
	if cfg.SessionSecure, err = getBool("SESSION_SECURE", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.SeedSampleData, err = getBool("SEED_SAMPLE_DATA", true); err != nil {
		errs = append(errs, err)
	}
	if cfg.LegacyPasswordDigest, err = getBool("LEGACY_PASSWORD_DIGEST", false); err != nil {
		errs = append(errs, err)
	}

	defaultFormat := "console"
	if cfg.IsProduction() {
		defaultFormat = "json"
	}
	cfg.LogFormat = getenv("LOG_FORMAT", defaultFormat)

	if cfg.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", cfg.DBDriver))
	}
	switch cfg.SessionStore {
	case "cookie", "memory":
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE %q is not supported", cfg.SessionStore))
	}
	if cfg.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("SESSION_MAX_AGE must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
