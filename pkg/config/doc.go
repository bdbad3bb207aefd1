// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for .env files. Parsed values are cached per
// type and prefix for the lifetime of the process:
//
//	type Config struct {
//		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//		Lang     string `env:"LANG" envDefault:"en"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg,
//		config.WithPrefix("SIFT_"),
//		config.WithEnvFiles("./deploy/.env"),
//	)
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer. Tests that change the environment
// between loads should call ResetCache or pass WithoutCache.
package config
