// Package config handles global configuration and environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the global configuration stored in
// $XDG_CONFIG_HOME/marginalia/config.yml. Environment variables take
// precedence over file values; see the accessor functions.
type Config struct {
	VaultPath              string  `yaml:"vault_path,omitempty"`
	UnpaywallEmail         string  `yaml:"unpaywall_email,omitempty"`
	S2APIKey               string  `yaml:"s2_api_key,omitempty"`
	AnthropicAPIKey        string  `yaml:"anthropic_api_key,omitempty"`
	RequestIntervalSeconds float64 `yaml:"request_interval_seconds,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "marginalia"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultVaultPath is used when nothing else names a vault.
	DefaultVaultPath = "./vault"
	// DefaultRequestInterval is the minimum spacing between outbound
	// provider requests.
	DefaultRequestInterval = time.Second
)

// cache holds the loaded global config.
var cache *Config

// Path returns the global config file path. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/marginalia/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global configuration. A missing file is not an
// error; it yields an empty config.
func Load() (*Config, error) {
	if cache != nil {
		return cache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cache = &Config{}
			return cache, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.VaultPath != "" {
		cfg.VaultPath = ExpandTilde(cfg.VaultPath)
	}

	cache = &cfg
	return cache, nil
}

// Save writes the global configuration file, creating its directory
// if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cache = nil
	return nil
}

// ResetCache clears the cached global config. Useful for testing.
func ResetCache() {
	cache = nil
}

// VaultPath resolves the vault location: explicit flag value, then
// MARGINALIA_VAULT, then the config file, then the default.
func VaultPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("MARGINALIA_VAULT"); env != "" {
		return env
	}
	cfg, _ := Load()
	if cfg.VaultPath != "" {
		return cfg.VaultPath
	}
	return DefaultVaultPath
}

// UnpaywallEmail returns the contact email sent to the Unpaywall API.
func UnpaywallEmail() string {
	if env := os.Getenv("UNPAYWALL_EMAIL"); env != "" {
		return env
	}
	cfg, _ := Load()
	return cfg.UnpaywallEmail
}

// S2APIKey returns the Semantic Scholar API key, if configured.
func S2APIKey() string {
	if env := os.Getenv("SEMANTIC_SCHOLAR_API_KEY"); env != "" {
		return env
	}
	cfg, _ := Load()
	return cfg.S2APIKey
}

// AnthropicAPIKey returns the Anthropic API key, if configured.
func AnthropicAPIKey() string {
	if env := os.Getenv("ANTHROPIC_API_KEY"); env != "" {
		return env
	}
	cfg, _ := Load()
	return cfg.AnthropicAPIKey
}

// RequestInterval returns the minimum interval between outbound
// provider requests.
func RequestInterval() time.Duration {
	cfg, _ := Load()
	if cfg.RequestIntervalSeconds > 0 {
		return time.Duration(cfg.RequestIntervalSeconds * float64(time.Second))
	}
	return DefaultRequestInterval
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
