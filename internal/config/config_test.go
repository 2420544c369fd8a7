package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://localhost:5000" {
		t.Errorf("server url = %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout() != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Server.Timeout())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  url: http://api.internal:8080\n  timeout_seconds: 30\nexport:\n  output_dir: /tmp/invoices\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://api.internal:8080" {
		t.Errorf("server url = %q", cfg.Server.URL)
	}
	if cfg.Server.Timeout() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Server.Timeout())
	}
	if cfg.Export.OutputDir != "/tmp/invoices" {
		t.Errorf("output dir = %q", cfg.Export.OutputDir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  url: http://file-wins:1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CLIENTDESK_SERVER_URL", "http://env-wins:2")
	t.Setenv("CLIENTDESK_TIMEOUT", "45s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://env-wins:2" {
		t.Errorf("server url = %q, env should win", cfg.Server.URL)
	}
	if cfg.Server.Timeout() != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.Server.Timeout())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.URL = "http://saved:9"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.URL != "http://saved:9" {
		t.Errorf("round-tripped url = %q", loaded.Server.URL)
	}
}
