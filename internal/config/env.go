package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey       = "RAWG_API_KEY"
	EnvLegacyAPIKey = "VITE_RAWG_API_KEY"
	EnvBaseURL      = "GAMESDB_BASE_URL"
	EnvDatabase     = "GAMESDB_DB"
)

// DefaultEnvFile is read when no env file is named explicitly.
const DefaultEnvFile = ".env"

// Lookup resolves an environment variable.
type Lookup func(key string) (string, bool)

// EnvLookup returns a Lookup over the process environment backed by the
// variables in envFile. Process variables take precedence, matching
// godotenv.Load. A missing envFile is an error unless it is
// DefaultEnvFile, which is optional.
func EnvLookup(envFile string) (Lookup, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	vars, err := godotenv.Read(envFile)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			vars = map[string]string{}
		} else {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}, nil
}

// MapLookup returns a Lookup over a fixed map.
func MapLookup(vars map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// ApplyEnv overrides cfg with any non-empty variables found by lookup.
// RAWG_API_KEY wins over VITE_RAWG_API_KEY.
func (c *Config) ApplyEnv(lookup Lookup) {
	if v := get(lookup, EnvLegacyAPIKey); v != "" {
		c.APIKey = v
	}
	if v := get(lookup, EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := get(lookup, EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := get(lookup, EnvDatabase); v != "" {
		c.Database = v
	}
}

func get(lookup Lookup, key string) string {
	v, _ := lookup(key)
	return v
}
