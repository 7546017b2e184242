package config

import (
	"errors"

	"github.com/joho/godotenv"
)

// LoadEnv reads the given .env files into the process environment. Later
// files override earlier ones, and both override variables already set.
// With no arguments it reads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on error.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}
