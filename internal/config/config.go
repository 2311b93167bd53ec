package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	ModeHTTP = "http"
	ModeCLI  = "cli"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`
	Env         string `env:"ENV" envDefault:"dev"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	// Mode selects the front end: "http" serves the REST surface,
	// "cli" runs the interactive store menu on stdin.
	Mode string `env:"MODE" envDefault:"http"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Mode != ModeHTTP && cfg.Mode != ModeCLI {
		return Config{}, fmt.Errorf("config: unknown mode %q", cfg.Mode)
	}
	return cfg, nil
}
