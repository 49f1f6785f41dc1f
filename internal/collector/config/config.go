package config

import (
	"time"

	"celebrity-trends/pkg/config"
)

// Source holds the listing site configuration.
type Source struct {
	BaseURL        string        `mapstructure:"base_url"`
	Pages          int           `mapstructure:"pages"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ArticleDelay   time.Duration `mapstructure:"article_delay"`
}

// Output holds the assembled dataset destinations.
type Output struct {
	CSVPath  string `mapstructure:"csv_path"`
	JSONPath string `mapstructure:"json_path"`
}

// Gemini holds the configuration for the entity recognition provider.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Config holds the full configuration for the collector.
type Config struct {
	App    config.App    `mapstructure:"app"`
	Logger config.Logger `mapstructure:"logger"`
	Source Source        `mapstructure:"source"`
	Output Output        `mapstructure:"output"`
	Gemini Gemini        `mapstructure:"gemini"`
}

// Load loads the collector configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Source.Pages <= 0 {
		cfg.Source.Pages = 5
	}
	if cfg.Source.RequestTimeout == 0 {
		cfg.Source.RequestTimeout = 30 * time.Second
	}
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		cfg.Gemini.MaxRequestPerMinute = 15
	}
	return &cfg, nil
}
