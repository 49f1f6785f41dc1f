package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"celebrity-trends/internal/enricher/config"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"

	"golang.org/x/time/rate"
)

// SentimentClassifier scores a text against the external sentiment service.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*entity.SentimentRecord, error)
}

type sentimentRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
}

// NewSentimentRepository creates a classifier over the configured service.
// The request limiter enforces the fixed delay between calls.
func NewSentimentRepository(cfg *config.Config, log *logger.Logger) SentimentClassifier {
	secondsPerRequest := time.Minute / time.Duration(cfg.Sentiment.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &sentimentRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: cfg.Sentiment.RequestTimeout,
		},
		requestLimiter: requestLimiter,
	}
}

// Classify submits the text as a GET query parameter with the API key header.
// A 200 response carries at least a sentiment label; anything else is an
// error with the upstream body attached.
func (r *sentimentRepository) Classify(ctx context.Context, text string) (*entity.SentimentRecord, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	reqURL := fmt.Sprintf("%s?text=%s", r.cfg.Sentiment.BaseURL, url.QueryEscape(text))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentiment request: %w", err)
	}
	req.Header.Set("X-Api-Key", r.cfg.Sentiment.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call sentiment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from sentiment service: %d - %s", resp.StatusCode, string(body))
	}

	var record entity.SentimentRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment response: %w", err)
	}
	if record.Sentiment == "" {
		return nil, fmt.Errorf("sentiment service response missing sentiment field")
	}
	return &record, nil
}
