package main

import (
	"fmt"

	"github.com/skillsenselab/meetingminds/config"
	"github.com/skillsenselab/meetingminds/diarization/pyannote"
	"github.com/skillsenselab/meetingminds/llm/ollama"
	"github.com/skillsenselab/meetingminds/server"
	"github.com/skillsenselab/meetingminds/transcription/whisper"
	"github.com/skillsenselab/meetingminds/validation"
)

// telemetryConfig controls the OpenTelemetry exporters.
type telemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// summarizerConfig controls the optional summarization stage.
type summarizerConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// appConfig is the full application configuration.
type appConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server     server.Config    `yaml:"server" mapstructure:"server"`
	Whisper    whisper.Config   `yaml:"whisper" mapstructure:"whisper"`
	Pyannote   pyannote.Config  `yaml:"pyannote" mapstructure:"pyannote"`
	Ollama     ollama.Config    `yaml:"ollama" mapstructure:"ollama"`
	Summarizer summarizerConfig `yaml:"summarizer" mapstructure:"summarizer"`
	Languages  []string         `yaml:"languages" mapstructure:"languages"`
	Telemetry  telemetryConfig  `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills unset fields with working development defaults.
func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "meetingminds"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	if len(c.Languages) == 0 {
		c.Languages = []string{"en", "es"}
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
}

// Validate checks the configuration for invalid values.
func (c *appConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	// Struct tags on the nested provider configs (sidecar URLs, timeouts,
	// temperature bounds) are checked in one pass.
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}
