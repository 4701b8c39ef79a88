package server

import (
	"github.com/skillsenselab/meetingminds/server/middleware"
	"github.com/skillsenselab/meetingminds/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host              string                `yaml:"host" mapstructure:"host"`
	Port              int                   `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout       int                   `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`   // seconds
	WriteTimeout      int                   `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"` // seconds
	IdleTimeout       int                   `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`   // seconds
	MaxBodySize       string                `yaml:"max_body_size" mapstructure:"max_body_size"`                  // e.g. "100MB"
	RequestsPerMinute int                   `yaml:"requests_per_minute" mapstructure:"requests_per_minute" validate:"gte=0"`
	UploadDir         string                `yaml:"upload_dir" mapstructure:"upload_dir"`
	CORS              middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
	Enabled           bool                  `yaml:"enabled" mapstructure:"enabled"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30
	}
	if c.WriteTimeout == 0 {
		// Pipeline runs block the response while sidecars work through
		// the audio, so the write timeout has to cover a full run.
		c.WriteTimeout = 600
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "100MB"
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept"}
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
