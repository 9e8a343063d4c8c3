package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse(env.ToMap(os.Environ()))
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from the given environment.
func Parse(environ map[string]string) (Config, error) {
	var raw environment
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Config{}, err
	}

	local, err := time.LoadLocation(raw.LocalZone)
	if err != nil {
		return Config{}, fmt.Errorf("LOCAL_TIMEZONE: %w", err)
	}
	reporting, err := time.LoadLocation(raw.ReportingZone)
	if err != nil {
		return Config{}, fmt.Errorf("REPORTING_TIMEZONE: %w", err)
	}
	if raw.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", raw.RequestTimeout)
	}
	if raw.BcryptCost < bcrypt.MinCost || raw.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, raw.BcryptCost)
	}
	if raw.LoginPerMinute <= 0 {
		return Config{}, fmt.Errorf("LOGIN_RATE_PER_MIN must be positive, got %d", raw.LoginPerMinute)
	}
	if _, err := log.ParseLevel(raw.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return Config{
		Port:           raw.Port,
		DBName:         raw.DBName,
		Turso:          raw.Turso,
		Local:          local,
		Reporting:      reporting,
		RequestTimeout: raw.RequestTimeout,
		BcryptCost:     raw.BcryptCost,
		LoginPerMinute: raw.LoginPerMinute,
		TrustProxy:     raw.TrustProxy,
		LogLevel:       raw.LogLevel,
		StaticDir:      raw.StaticDir,
		Slack:          raw.Slack,
		ProjectID:      raw.ProjectID,
		PubSubTopic:    raw.PubSubTopic,
	}, nil
}
