package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend REST API settings
	Server ServerConfig `yaml:"server"`

	// Invoice export settings
	Export ExportConfig `yaml:"export"`

	// Logging
	Log LogConfig `yaml:"log"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`             // Base URL of the REST backend
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for exported invoice files
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file for the TUI; empty discards
}

// DefaultConfigPath returns ~/.config/clientdesk/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "clientdesk", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "clientdesk", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:5000",
			TimeoutSeconds: 10,
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(homeDir, ".config", "clientdesk", "invoices"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads config from the given path, or returns defaults if the file
// doesn't exist. Environment variables (optionally from a .env file in the
// working directory) override the file in either case.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// A missing .env is not an error.
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CLIENTDESK_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("CLIENTDESK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Server.TimeoutSeconds = int(d.Seconds())
		}
	}
	if v := os.Getenv("CLIENTDESK_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("CLIENTDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CLIENTDESK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the export and log directories.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Export.OutputDir, 0755); err != nil {
		return err
	}
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0755); err != nil {
			return err
		}
	}
	return nil
}
