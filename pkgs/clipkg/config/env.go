package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

////////////////////////////////////////////////////////////////////////////////

const (
	ENV_ACCESS_TOKEN = "GAME_TWITTER_ACCESS_TOKEN"
	DEFAULT_ENV_FILE = ".env"
)

// ErrMissingAccessToken is returned when ENV_ACCESS_TOKEN is unset or blank
var ErrMissingAccessToken = fmt.Errorf("please set %s in your environment or %s", ENV_ACCESS_TOKEN, DEFAULT_ENV_FILE)

////////////////////////////////////////////////////////////////////////////////

// LoadEnvFiles loads variables from the given dotenv files without
// overriding the ones already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DEFAULT_ENV_FILE}
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadAccessToken returns the access token from the process environment
func LoadAccessToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(ENV_ACCESS_TOKEN))
	if token == "" {
		return "", ErrMissingAccessToken
	}
	return token, nil
}
