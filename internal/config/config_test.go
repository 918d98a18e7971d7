package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snackpos/snackdash/internal/pos"
)

func TestLoad_MissingConfigFallsBackToDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIURL, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != pos.DefaultBaseURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, pos.DefaultBaseURL)
	}
}

func TestLoad_ParsesAndTrimsConfigFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://10.0.0.5:5000/api  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:5000/api" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://file:5000/api"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv(EnvAPIURL, "http://env:5000/api")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env:5000/api" {
		t.Fatalf("APIURL = %q, want env to beat file", cfg.APIURL)
	}

	cfg, err = Load(path, "http://flag:5000/api")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://flag:5000/api" {
		t.Fatalf("APIURL = %q, want flag to beat env", cfg.APIURL)
	}
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	t.Setenv(EnvAPIURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [broken`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path, ""); err == nil {
		t.Fatalf("Load accepted malformed config")
	}
}
