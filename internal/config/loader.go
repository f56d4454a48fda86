package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bilgehannal/dnsredir/internal/utils"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default location for the config file
	DefaultConfigPath = "/etc/dnsredir.yml"
)

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	return &Config{
		StorageRoot: "/var/lib/dnsredir",
		Bind:        "127.0.0.1:53",
		AddDefaults: true,
		Emummc: Emummc{
			Active: false,
			ID:     0,
		},
		LogPath: "/var/log/dnsredird.log",
	}
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default config
		if err := createDefaultConfig(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return defaultConfig(), nil
	}

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal default config to YAML
	config := defaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reload reloads the configuration from disk
func Reload(path string) (*Config, error) {
	return Load(path)
}

// LogConfigInfo logs detailed information about the configuration
func LogConfigInfo(cfg *Config, logger *utils.Logger) {
	if cfg == nil || logger == nil {
		return
	}

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("📋 Configuration Summary")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("🔹 Storage Root: %s", cfg.StorageRoot)
	logger.Info("🔹 Bind:         %s", cfg.Bind)
	logger.Info("🔹 Add Defaults: %v", cfg.AddDefaults)
	if cfg.Emummc.Active {
		logger.Info("🔹 Emummc:       active (id %04x)", cfg.Emummc.ID)
	} else {
		logger.Info("🔹 Emummc:       inactive")
	}
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}
