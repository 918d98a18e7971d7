package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/snackpos/snackdash/internal/pos"
)

// Config captures the settings snackdash needs to reach the POS service.
type Config struct {
	APIURL string
}

const (
	defaultConfigPath = "~/.config/snackdash/config.toml"

	// EnvAPIURL overrides the configured base URL at runtime.
	EnvAPIURL = "SNACKDASH_API_URL"
)

// Load resolves the API base URL. Precedence: explicit override argument,
// then the environment, then the config file, then the default localhost
// address. A missing config file is not an error.
func Load(path, override string) (Config, error) {
	cfg := Config{APIURL: pos.DefaultBaseURL}

	fromFile, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	if fromFile != "" {
		cfg.APIURL = fromFile
	}
	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}
	if o := strings.TrimSpace(override); o != "" {
		cfg.APIURL = o
	}
	return cfg, nil
}

func loadFile(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL string `toml:"api_url"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return "", fmt.Errorf("parse config: %w", err)
	}
	return strings.TrimSpace(raw.APIURL), nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
