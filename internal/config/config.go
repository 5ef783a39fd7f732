package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/GregMSThompson/buildboard/internal/errs"
)

const (
	SettingsBackendREST      = "rest"
	SettingsBackendFirestore = "firestore"
)

type Config struct {
	APIURL          string        `env:"APIURL"          envDefault:"http://127.0.0.1:8000"`
	APIPrefix       string        `env:"APIPREFIX"       envDefault:"/api"`
	AuthToken       string        `env:"AUTHTOKEN"`
	CachePath       string        `env:"CACHEPATH"       envDefault:"dashboard_cache.db"`
	SettingsBackend string        `env:"SETTINGSBACKEND" envDefault:"rest"`
	ProjectID       string        `env:"PROJECTID"`
	LogLevel        string        `env:"LOGLEVEL"        envDefault:"info"`
	HTTPTimeout     time.Duration `env:"HTTPTIMEOUT"     envDefault:"15s"`
}

func New() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SettingsBackend {
	case SettingsBackendREST:
		if c.APIURL == "" {
			return errs.NewValidationError("APIURL is required for the rest settings backend")
		}
	case SettingsBackendFirestore:
		if c.ProjectID == "" {
			return errs.NewValidationError("PROJECTID is required for the firestore settings backend")
		}
	default:
		return errs.NewValidationError(fmt.Sprintf("SETTINGSBACKEND must be %q or %q, got %q",
			SettingsBackendREST, SettingsBackendFirestore, c.SettingsBackend))
	}
	if c.CachePath == "" {
		return errs.NewValidationError("CACHEPATH must not be empty")
	}
	return nil
}
