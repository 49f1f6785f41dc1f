package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"celebrity-trends/internal/dashboard/config"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const (
	// maxTrendsKeywords is the upstream limit per request.
	maxTrendsKeywords = 5
	// minTrendsSpanDays is the minimum range for a meaningful series;
	// shorter ranges are skipped entirely.
	minTrendsSpanDays = 7
)

// TrendsRepository fetches search-interest series for a set of keywords over
// a date range.
type TrendsRepository interface {
	InterestOverTime(ctx context.Context, keywords []string, start, end time.Time) ([]entity.InterestSeries, error)
}

type trendsRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	client         *http.Client
	requestLimiter *rate.Limiter
	cache          *cache.Cache
}

// NewTrendsRepository creates a search-interest client with a TTL cache
// keyed by the query parameters.
func NewTrendsRepository(cfg *config.Config, log *logger.Logger) TrendsRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Trends.MaxRequestPerMinute)
	return &trendsRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: cfg.Trends.RequestTimeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		cache:          cache.New(cfg.Trends.CacheTTL, 10*time.Minute),
	}
}

func (r *trendsRepository) InterestOverTime(ctx context.Context, keywords []string, start, end time.Time) ([]entity.InterestSeries, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if len(keywords) > maxTrendsKeywords {
		keywords = keywords[:maxTrendsKeywords]
	}
	if end.Sub(start) < minTrendsSpanDays*24*time.Hour {
		r.logger.Debug("Date range below minimum span, skipping search interest",
			logger.StringField("start", start.Format("2006-01-02")),
			logger.StringField("end", end.Format("2006-01-02")))
		return nil, nil
	}

	key := cacheKey(keywords, start, end)
	if cached, ok := r.cache.Get(key); ok {
		return cached.([]entity.InterestSeries), nil
	}

	var series []entity.InterestSeries
	var err error
	if r.cfg.Trends.Mock {
		series = mockSeries(keywords, start, end)
	} else {
		series, err = r.fetch(ctx, keywords, start, end)
		if err != nil {
			return nil, err
		}
	}

	r.cache.SetDefault(key, series)
	return series, nil
}

func (r *trendsRepository) fetch(ctx context.Context, keywords []string, start, end time.Time) ([]entity.InterestSeries, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	params := url.Values{}
	params.Set("keywords", strings.Join(keywords, ","))
	params.Set("start", start.Format("2006-01-02"))
	params.Set("end", end.Format("2006-01-02"))
	params.Set("geo", r.cfg.Trends.Geo)
	params.Set("hl", r.cfg.Trends.Locale)

	reqURL := fmt.Sprintf("%s/interest-over-time?%s", r.cfg.Trends.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create trends request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call trends service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-OK response from trends service: %d - %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Series []entity.InterestSeries `json:"series"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode trends response: %w", err)
	}
	return payload.Series, nil
}

func cacheKey(keywords []string, start, end time.Time) string {
	return strings.Join(keywords, "|") + "|" + start.Format("2006-01-02") + "|" + end.Format("2006-01-02")
}

// mockSeries produces a deterministic synthetic signal for demo and
// development runs without the upstream service.
func mockSeries(keywords []string, start, end time.Time) []entity.InterestSeries {
	days := int(end.Sub(start).Hours()/24) + 1
	series := make([]entity.InterestSeries, 0, len(keywords))
	for ki, keyword := range keywords {
		seed := 0
		for _, r := range keyword {
			seed += int(r)
		}
		points := make([]entity.InterestPoint, 0, days)
		for d := 0; d < days; d++ {
			points = append(points, entity.InterestPoint{
				Date:  start.AddDate(0, 0, d),
				Value: 20 + (seed+d*13+ki*7)%80,
			})
		}
		series = append(series, entity.InterestSeries{Keyword: keyword, Points: points})
	}
	return series
}
