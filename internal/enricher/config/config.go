package config

import (
	"time"

	"celebrity-trends/pkg/config"
)

// Sentiment holds the sentiment service configuration.
type Sentiment struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Data holds the input and output file locations.
type Data struct {
	InputPath  string `mapstructure:"input_path"`
	OutputPath string `mapstructure:"output_path"`
}

// Config holds the full configuration for the enricher.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	Sentiment Sentiment     `mapstructure:"sentiment"`
	Data      Data          `mapstructure:"data"`
}

// Load loads the enricher configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Sentiment.RequestTimeout == 0 {
		cfg.Sentiment.RequestTimeout = 30 * time.Second
	}
	// One request per second by default, matching the service's courtesy
	// rate expectation.
	if cfg.Sentiment.MaxRequestPerMinute <= 0 {
		cfg.Sentiment.MaxRequestPerMinute = 60
	}
	return &cfg, nil
}
