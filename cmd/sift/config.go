package main

import (
	"github.com/dmitrymomot/sift/pkg/config"
)

// Config is read from SIFT_* environment variables and an optional .env file.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	Lang       string `env:"LANG" envDefault:"en"`
	LocalesDir string `env:"LOCALES_DIR"`
	Async      bool   `env:"ASYNC" envDefault:"false"`
}

const envPrefix = "SIFT_"

func loadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, config.WithPrefix(envPrefix)); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
