package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillsenselab/meetingminds/logger"
)

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Whisper       struct {
		URL   string `yaml:"url" mapstructure:"url"`
		Model string `yaml:"model" mapstructure:"model"`
	} `yaml:"whisper" mapstructure:"whisper"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
name: meetingminds
environment: production
whisper:
  url: http://whisper:8387
  model: medium
`)

	var cfg testConfig
	if err := LoadConfig("meetingminds", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "meetingminds" {
		t.Errorf("expected name meetingminds, got %q", cfg.Name)
	}
	if cfg.Whisper.URL != "http://whisper:8387" {
		t.Errorf("expected whisper url from yaml, got %q", cfg.Whisper.URL)
	}
	if cfg.Whisper.Model != "medium" {
		t.Errorf("expected whisper model medium, got %q", cfg.Whisper.Model)
	}
}

func TestLoadConfig_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yml", `
name: meetingminds
whisper:
  model: base
`)
	t.Setenv("WHISPER_MODEL", "large-v3")

	var cfg testConfig
	if err := LoadConfig("meetingminds", &cfg, WithConfigFile(cfgFile)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Whisper.Model != "large-v3" {
		t.Errorf("expected env override large-v3, got %q", cfg.Whisper.Model)
	}
}

func TestLoadConfig_MissingFilesIsNotAnError(t *testing.T) {
	var cfg testConfig
	if err := LoadConfig("nonexistent-service", &cfg); err != nil {
		t.Fatalf("expected nil error without config files, got %v", err)
	}
}

func TestServiceConfig_ApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "meetingminds"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected development default, got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled in development")
	}
	if cfg.Logging.ServiceName != "meetingminds" {
		t.Errorf("expected service name propagated to logging, got %q", cfg.Logging.ServiceName)
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
	}{
		{"valid", ServiceConfig{Name: "mm", Environment: "production", Logging: logger.Config{Level: "info", Format: "json"}}, false},
		{"missing name", ServiceConfig{Environment: "production"}, true},
		{"bad environment", ServiceConfig{Name: "mm", Environment: "qa"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
