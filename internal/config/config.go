package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. Values are taken from
// environment variables with the prefix "RENDERJET_".
// Example: RENDERJET_API_KEY=rj_live_xxx RENDERJET_HTTP_TIMEOUT=60s .
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL"     default:"https://api.renderjet.io"`
	APIKey      string        `envconfig:"API_KEY"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	LogLevel    string        `envconfig:"LOG_LEVEL"    default:"info"`
}

// Load populates Config from environment variables (prefix RENDERJET_).
func Load() (Config, error) {
	var c Config
	return c, envconfig.Process("RENDERJET", &c)
}
