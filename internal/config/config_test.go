package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.APIBaseURL != "" {
		t.Errorf("APIBaseURL = %q, want empty (client default)", cfg.APIBaseURL)
	}
	if cfg.StorePath == "" {
		t.Error("StorePath should fall back to the default location")
	}
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "api_base_url: http://localhost:9999/api\ntimeout_seconds: 5\nmax_authors: 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9999/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
	if cfg.MaxAuthors != 3 {
		t.Errorf("MaxAuthors = %d, want 3", cfg.MaxAuthors)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api_base_url: http://file\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("HEPHARVEST_API_URL", "http://env")
	t.Setenv("HEPHARVEST_STORE", "/tmp/custom.db")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.APIBaseURL != "http://env" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.APIBaseURL)
	}
	if cfg.StorePath != "/tmp/custom.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api_base_url: [broken\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := load(path); err == nil {
		t.Error("load() expected error for malformed YAML")
	}
}
