package config

import (
	"fmt"
	"net"
)

// Config represents the complete service configuration. Redirections
// themselves live in the hosts files under StorageRoot, not here.
type Config struct {
	StorageRoot string `yaml:"storageRoot"`
	Bind        string `yaml:"bind"`
	AddDefaults bool   `yaml:"addDefaults"`
	Emummc      Emummc `yaml:"emummc"`
	LogPath     string `yaml:"logPath"`
}

// Emummc selects which hosts-file candidates the resolver tries.
type Emummc struct {
	Active bool   `yaml:"active"`
	ID     uint32 `yaml:"id"`
}

// Configuration errors
var (
	ErrMissingStorageRoot = fmt.Errorf("storageRoot is missing")
	ErrMissingBind        = fmt.Errorf("bind is missing")
)

// InvalidBindError indicates a bind address the DNS server cannot listen on
type InvalidBindError struct {
	Addr   string
	Reason string
}

func (e *InvalidBindError) Error() string {
	return fmt.Sprintf("invalid bind address '%s': %s", e.Addr, e.Reason)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.StorageRoot == "" {
		return ErrMissingStorageRoot
	}

	if c.Bind == "" {
		return ErrMissingBind
	}

	host, port, err := net.SplitHostPort(c.Bind)
	if err != nil {
		return &InvalidBindError{Addr: c.Bind, Reason: err.Error()}
	}
	if net.ParseIP(host) == nil {
		return &InvalidBindError{Addr: c.Bind, Reason: "host must be an IP address"}
	}
	if port == "" {
		return &InvalidBindError{Addr: c.Bind, Reason: "port is missing"}
	}

	return nil
}
