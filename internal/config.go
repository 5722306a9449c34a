package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPollInterval is how long to wait between credential report checks.
const DefaultPollInterval = 20 * time.Second

// Config holds settings shared by every command.
type Config struct {
	SessionsDir  string `yaml:"sessions_dir"`
	StorePath    string `yaml:"store_path"`
	Region       string `yaml:"region"`
	PollInterval string `yaml:"poll_interval"`
	LogFormat    string `yaml:"log_format"`
	Verbose      bool   `yaml:"verbose"`
}

// ConfigDir is ~/.cloudrecon.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".cloudrecon")
}

// DefaultConfigPath is where LoadConfig looks when no --config is given.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		SessionsDir:  "sessions",
		StorePath:    filepath.Join(ConfigDir(), "credentials.json"),
		Region:       DefaultRegion,
		PollInterval: DefaultPollInterval.String(),
		LogFormat:    "text",
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.StorePath = expandHome(cfg.StorePath)
	cfg.SessionsDir = expandHome(cfg.SessionsDir)

	if _, err := cfg.Interval(); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log_format %q: must be text or json", cfg.LogFormat)
	}
	return cfg, nil
}

// Interval parses PollInterval.
func (c *Config) Interval() (time.Duration, error) {
	if c.PollInterval == "" {
		return DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(c.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll_interval %q: %w", c.PollInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid poll_interval %q: must be positive", c.PollInterval)
	}
	return d, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
