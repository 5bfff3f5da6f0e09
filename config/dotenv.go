package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by the CLI when present.
const DefaultEnvFile = ".env"

// WithEnvFile returns a lookup that falls back to the variables declared in
// path when getenv has no value. Variables already set in the environment
// win. A missing file is not an error; getenv is returned unchanged.
func WithEnvFile(path string, getenv func(string) string) (func(string) string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return getenv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, path, err)
	}
	return func(name string) string {
		if v := getenv(name); v != "" {
			return v
		}
		return vars[name]
	}, nil
}
