// Package config reads process settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Server holds the settings of cmd/server.
type Server struct {
	Addr string `env:"HGB_ADDR" envDefault:":8080"`
	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel     string `env:"HGB_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"HGB_LOG_FORMAT" envDefault:"json"`
	MaxRuns      int    `env:"HGB_MAX_RUNS" envDefault:"256"`
	MaxBodyBytes int64  `env:"HGB_MAX_BODY_BYTES" envDefault:"1048576"`
	ScenarioDir  string `env:"HGB_SCENARIO_DIR" envDefault:"scenarios"`
	// OTelEndpoint enables tracing when set, e.g. http://localhost:4318.
	OTelEndpoint string `env:"HGB_OTEL_ENDPOINT"`
	ServiceName  string `env:"HGB_SERVICE_NAME" envDefault:"hgbdice"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads and checks the server settings.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.MaxRuns < 1 {
		return Server{}, fmt.Errorf("HGB_MAX_RUNS must be positive, got %d", cfg.MaxRuns)
	}
	if cfg.MaxBodyBytes < 1 {
		return Server{}, fmt.Errorf("HGB_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}
