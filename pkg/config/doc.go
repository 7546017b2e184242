// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 and adds
// struct validation through github.com/go-playground/validator/v10:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into a struct using `env` tags, validates
//     it using `validate` tags and caches the result per type.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache and ForceReloadConfig are meant for tests.
//
// # Usage
//
//	type HTTPConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
//	}
//
//	var cfg HTTPConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// A failed Load is not cached, so the next call parses again.
//
// # Errors
//
//   - ErrParsingConfig: env tags could not be satisfied.
//   - ErrValidatingConfig: validate tags rejected the parsed values.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load.
package config
