package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GuardianBaseURL != "https://content.guardianapis.com" {
		t.Errorf("GuardianBaseURL = %q", cfg.GuardianBaseURL)
	}
	if cfg.DevtoBaseURL != "https://dev.to" {
		t.Errorf("DevtoBaseURL = %q", cfg.DevtoBaseURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.HTTPTimeout() != 15*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 15s", cfg.HTTPTimeout())
	}
	if cfg.StorePath != "newsdash.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := strings.Join([]string{
		"guardian_api_key: file-key",
		"page_size: 25",
		"http_timeout_seconds: 5",
		"log_level: debug",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GuardianAPIKey != "file-key" {
		t.Errorf("GuardianAPIKey = %q", cfg.GuardianAPIKey)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.HTTPTimeout() != 5*time.Second {
		t.Errorf("HTTPTimeout() = %v, want 5s", cfg.HTTPTimeout())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("guardian_api_key: file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEWSDASH_GUARDIAN_API_KEY", "env-key")
	t.Setenv("NEWSDASH_PAGE_SIZE", "50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GuardianAPIKey != "env-key" {
		t.Errorf("GuardianAPIKey = %q, want env-key", cfg.GuardianAPIKey)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero page size", "page_size: 0"},
		{"negative timeout", "http_timeout_seconds: -3"},
		{"empty guardian url", `guardian_base_url: " "`},
		{"empty store path", `store_path: " "`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body+"\n"), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
