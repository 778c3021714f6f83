package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var dotenvLoaded sync.Once

// loadDotenv loads ./.env once per process. A missing file is not an error.
func loadDotenv() {
	dotenvLoaded.Do(func() {
		_ = godotenv.Load()
	})
}

// Load parses environment variables into v based on its `env` struct tags.
// The first call also loads a .env file from the working directory, if any;
// variables already present in the environment take precedence over it.
//
// Example:
//
//	type TrackingConfig struct {
//		APIKey string        `env:"MBUZZ_API_KEY,required"`
//		Timeout time.Duration `env:"MBUZZ_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg TrackingConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotenv()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadFile fills v from the environment (including `envDefault` values) and
// then overlays the YAML document at path. Keys present in the file win;
// everything the file omits keeps its environment or default value.
func LoadFile[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}
	if err := Load(v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Join(ErrReadingFile, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
