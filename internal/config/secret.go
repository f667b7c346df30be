package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyFileName = ".owm-key"

// DefaultKeyPath is <home>/.owm-key, or a bare .owm-key when the home
// directory is unknown.
func DefaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return keyFileName
	}
	return filepath.Join(home, keyFileName)
}

// LoadKey reads the OpenWeatherMap API key: the first line of the file at path.
func LoadKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: no api key present in path: %s", ErrMissingSecret, path)
	}
	key, _, _ := strings.Cut(string(data), "\n")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty api key in path: %s", ErrMissingSecret, path)
	}
	return key, nil
}
