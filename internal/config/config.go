package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// GitHub integration configuration
	GitHub GitHubConfig `toml:"github"`

	// Proxy configuration
	Proxy ProxyConfig `toml:"proxy"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int    `toml:"port"`         // API listen port
	OpenBrowser bool   `toml:"open_browser"` // Auto-open browser on startup
	FrontendURL string `toml:"frontend_url"` // URL to open (e.g., http://localhost:3000)
}

// DatabaseConfig contains storage settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // SQLite file path (empty = default location)
}

// GitHubConfig contains GitHub API settings.
type GitHubConfig struct {
	Token   string `toml:"token"`    // Personal access token (optional)
	BaseURL string `toml:"base_url"` // Override for testing (empty = api.github.com)
}

// ProxyConfig contains proxy settings.
type ProxyConfig struct {
	ExtraImageHosts []string `toml:"extra_image_hosts"` // Additional allowed image hosts
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			OpenBrowser: false,
			FrontendURL: "",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		GitHub: GitHubConfig{
			Token:   "",
			BaseURL: "",
		},
		Proxy: ProxyConfig{
			ExtraImageHosts: nil,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".devcard-companion")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from the given path.
func LoadFrom(path string) (*Config, error) {
	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Parse on top of the defaults so missing keys keep their values
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to the given path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	for _, host := range c.Proxy.ExtraImageHosts {
		if host == "" {
			return fmt.Errorf("extra image hosts cannot contain empty entries")
		}
	}

	return nil
}
