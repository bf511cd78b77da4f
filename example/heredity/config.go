package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the defaults for the command line flags.
type Config struct {
	Workers  int     `env:"HEREDITY_WORKERS" envDefault:"0"`
	DB       string  `env:"HEREDITY_DB"`
	Mutation float64 `env:"HEREDITY_MUTATION" envDefault:"0.01"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
