package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test.yml")

	testConfig := `storageRoot: /tmp/dnsredir-test
bind: 127.0.0.1:5533
addDefaults: true
emummc:
  active: true
  id: 18
logPath: /tmp/dnsredir-test.log
`
	if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.StorageRoot != "/tmp/dnsredir-test" {
		t.Errorf("Expected storageRoot '/tmp/dnsredir-test', got '%s'", cfg.StorageRoot)
	}
	if cfg.Bind != "127.0.0.1:5533" {
		t.Errorf("Expected bind '127.0.0.1:5533', got '%s'", cfg.Bind)
	}
	if !cfg.AddDefaults {
		t.Error("Expected addDefaults true")
	}
	if !cfg.Emummc.Active || cfg.Emummc.ID != 18 {
		t.Errorf("Unexpected emummc config: %+v", cfg.Emummc)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				StorageRoot: "/var/lib/dnsredir",
				Bind:        "127.0.0.1:53",
			},
			wantErr: false,
		},
		{
			name: "missing storage root",
			config: &Config{
				Bind: "127.0.0.1:53",
			},
			wantErr: true,
		},
		{
			name: "missing bind",
			config: &Config{
				StorageRoot: "/var/lib/dnsredir",
			},
			wantErr: true,
		},
		{
			name: "bind without port",
			config: &Config{
				StorageRoot: "/var/lib/dnsredir",
				Bind:        "127.0.0.1",
			},
			wantErr: true,
		},
		{
			name: "bind with hostname",
			config: &Config{
				StorageRoot: "/var/lib/dnsredir",
				Bind:        "localhost:53",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "dnsredir.yml")

	// Load config (should create default)
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load/create default config: %v", err)
	}

	if cfg.StorageRoot != "/var/lib/dnsredir" {
		t.Errorf("Expected default storageRoot, got '%s'", cfg.StorageRoot)
	}
	if !cfg.AddDefaults {
		t.Error("Expected addDefaults enabled by default")
	}
	if cfg.Emummc.Active {
		t.Error("Expected emummc inactive by default")
	}

	// The file was materialized and loads back identically.
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("Default config file not created: %v", err)
	}
	again, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to reload default config: %v", err)
	}
	if *again != *cfg {
		t.Errorf("Reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestWriter(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test.yml")

	initial := &Config{
		StorageRoot: "/var/lib/dnsredir",
		Bind:        "127.0.0.1:53",
		AddDefaults: true,
	}

	writer := NewWriter(configPath)
	if err := writer.Write(initial); err != nil {
		t.Fatalf("Failed to write initial config: %v", err)
	}

	t.Run("SetEmummc", func(t *testing.T) {
		if err := writer.SetEmummc(true, 0x12); err != nil {
			t.Fatalf("SetEmummc failed: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if !cfg.Emummc.Active || cfg.Emummc.ID != 0x12 {
			t.Errorf("Unexpected emummc config: %+v", cfg.Emummc)
		}
	})

	t.Run("SetBind", func(t *testing.T) {
		if err := writer.SetBind("127.0.0.2:5353"); err != nil {
			t.Fatalf("SetBind failed: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.Bind != "127.0.0.2:5353" {
			t.Errorf("Expected bind '127.0.0.2:5353', got '%s'", cfg.Bind)
		}
	})

	t.Run("SetBindRejectsInvalid", func(t *testing.T) {
		if err := writer.SetBind("not-an-addr"); err == nil {
			t.Error("Expected error for invalid bind address")
		}
	})

	t.Run("SetAddDefaults", func(t *testing.T) {
		if err := writer.SetAddDefaults(false); err != nil {
			t.Fatalf("SetAddDefaults failed: %v", err)
		}

		cfg, err := Load(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if cfg.AddDefaults {
			t.Error("Expected addDefaults disabled")
		}
	})
}
