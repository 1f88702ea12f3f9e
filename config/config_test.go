package config

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeFS struct {
	files map[string]bool
}

func (f fakeFS) Exists(path string) bool { return f.files[path] }
func (f fakeFS) LoadEnv(path string) error {
	return nil
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FromYAML(t *testing.T) {
	path := writeConfigFile(t, `
name: demo
environment: staging
logging:
  level: warn
  no_color: true
`)

	var cfg ServiceConfig
	if err := LoadConfig("demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}

	if cfg.Name != "demo" || cfg.Environment != "staging" {
		t.Errorf("unexpected base fields: %+v", cfg)
	}
	if cfg.Logging.Level != "warn" || !cfg.Logging.NoColor {
		t.Errorf("unexpected logging fields: %+v", cfg.Logging)
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, `
name: demo
logging:
  level: warn
`)
	t.Setenv("DEMO_LOGGING_LEVEL", "debug")
	t.Setenv("DEMO_VERSION", "1.2.3")

	var cfg ServiceConfig
	if err := LoadConfig("demo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatal(err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override for logging.level, got %q", cfg.Logging.Level)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("expected env-only key bound, got %q", cfg.Version)
	}
}

func TestLoadConfig_UnderscoreLeafKeys(t *testing.T) {
	t.Setenv("DEMO_TELEMETRY_SAMPLE_RATE", "0.5")

	var cfg ServiceConfig
	if err := LoadConfig("demo", &cfg, WithFileSystem(fakeFS{})); err != nil {
		t.Fatal(err)
	}
	if cfg.Telemetry.SampleRate != 0.5 {
		t.Errorf("expected telemetry.sample_rate bound from env, got %v", cfg.Telemetry.SampleRate)
	}
}

func TestLoadConfig_NoFilesIsFine(t *testing.T) {
	var cfg ServiceConfig
	if err := LoadConfig("demo", &cfg, WithFileSystem(fakeFS{})); err != nil {
		t.Fatalf("missing config files must not be an error, got %v", err)
	}
}

func TestLoadConfig_SearchPaths(t *testing.T) {
	fs := fakeFS{files: map[string]bool{
		"./config/demo.yml": true,
	}}
	// The found file is "existing" per the fake but unreadable by viper, so
	// the loader must surface a read error for it — proving the search hit.
	err := LoadConfig("demo", &ServiceConfig{}, WithFileSystem(fs))
	if err == nil {
		t.Fatal("expected a read error for the discovered config file")
	}
}

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "demo"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug on in development")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug to lower the log level, got %q", cfg.Logging.Level)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("expected telemetry defaults applied")
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "demo"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr bool
	}{
		{"valid", func(c *ServiceConfig) {}, false},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, true},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, true},
		{"bad log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, true},
		{"bad sample rate", func(c *ServiceConfig) {
			c.Telemetry.Enabled = true
			c.Telemetry.SampleRate = 2.0
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
