package config

import (
	"time"

	"celebrity-trends/pkg/config"
)

// Data holds the dataset file locations read by the dashboard.
type Data struct {
	CSVPath       string `mapstructure:"csv_path"`
	SentimentPath string `mapstructure:"sentiment_path"`
	MinDate       string `mapstructure:"min_date"`
}

// Trends holds the search-interest service configuration.
type Trends struct {
	BaseURL             string        `mapstructure:"base_url"`
	Geo                 string        `mapstructure:"geo"`
	Locale              string        `mapstructure:"locale"`
	Mock                bool          `mapstructure:"mock"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App    config.App    `mapstructure:"app"`
	Logger config.Logger `mapstructure:"logger"`
	API    config.API    `mapstructure:"api"`
	Data   Data          `mapstructure:"data"`
	Trends Trends        `mapstructure:"trends"`
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = 8080
	}
	if cfg.Trends.RequestTimeout == 0 {
		cfg.Trends.RequestTimeout = 30 * time.Second
	}
	if cfg.Trends.MaxRequestPerMinute <= 0 {
		cfg.Trends.MaxRequestPerMinute = 10
	}
	if cfg.Trends.CacheTTL == 0 {
		cfg.Trends.CacheTTL = time.Hour
	}
	if cfg.Trends.Geo == "" {
		cfg.Trends.Geo = "ES"
	}
	if cfg.Trends.Locale == "" {
		cfg.Trends.Locale = "es-ES"
	}
	return &cfg, nil
}
