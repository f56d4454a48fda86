package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Writer handles safe configuration file updates
type Writer struct {
	configPath string
}

// NewWriter creates a new config writer
func NewWriter(configPath string) *Writer {
	return &Writer{
		configPath: configPath,
	}
}

// Write writes the configuration to disk safely
func (w *Writer) Write(config *Config) error {
	// Validate before writing
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to temporary file first
	tempPath := w.configPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp config: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, w.configPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return fmt.Errorf("failed to rename config file: %w", err)
	}

	return nil
}

// SetEmummc updates the emulated-storage selection
func (w *Writer) SetEmummc(active bool, id uint32) error {
	// Load current config
	config, err := Load(w.configPath)
	if err != nil {
		return err
	}

	config.Emummc = Emummc{Active: active, ID: id}

	// Write back
	return w.Write(config)
}

// SetBind updates the DNS listen address
func (w *Writer) SetBind(addr string) error {
	// Load current config
	config, err := Load(w.configPath)
	if err != nil {
		return err
	}

	config.Bind = addr

	// Write back
	return w.Write(config)
}

// SetAddDefaults toggles whether the built-in entries are applied
func (w *Writer) SetAddDefaults(enabled bool) error {
	// Load current config
	config, err := Load(w.configPath)
	if err != nil {
		return err
	}

	config.AddDefaults = enabled

	// Write back
	return w.Write(config)
}
