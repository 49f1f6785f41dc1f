package repository

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"celebrity-trends/internal/dashboard/config"
	"celebrity-trends/internal/entity"
	"celebrity-trends/internal/normalizer"
	"celebrity-trends/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// ArticleRow is one presentation-ready article: list fields re-parsed, tag
// canonicalized, sentiment joined on.
type ArticleRow struct {
	ID         string
	Title      string
	Date       *time.Time
	Link       string
	Body       string
	Artists    []string
	Tag        string
	Author     string
	Sentiment  string
	Confidence float64
}

// DatasetRepository loads the joined article/sentiment dataset.
type DatasetRepository interface {
	Load() ([]ArticleRow, error)
}

const datasetCacheKey = "dataset"

type fileDatasetRepository struct {
	cfg    *config.Config
	logger *logger.Logger
	cache  *cache.Cache
}

// NewDatasetRepository creates a repository over the flat files. The parsed
// dataset is computed once per process lifetime; restarting is the only
// invalidation.
func NewDatasetRepository(cfg *config.Config, log *logger.Logger) DatasetRepository {
	return &fileDatasetRepository{
		cfg:    cfg,
		logger: log,
		cache:  cache.New(cache.NoExpiration, 0),
	}
}

func (r *fileDatasetRepository) Load() ([]ArticleRow, error) {
	if cached, ok := r.cache.Get(datasetCacheKey); ok {
		return cached.([]ArticleRow), nil
	}

	rows, err := r.readCSV()
	if err != nil {
		return nil, err
	}

	sentiments, err := r.readSentiment()
	if err != nil {
		r.logger.Warn("Could not load sentiment file, defaulting to unknown", logger.ErrorField(err))
		sentiments = nil
	}
	joinSentiment(rows, sentiments)

	r.cache.Set(datasetCacheKey, rows, cache.NoExpiration)
	r.logger.Info("Dataset loaded", logger.IntField("rows", len(rows)))
	return rows, nil
}

func (r *fileDatasetRepository) readCSV() ([]ArticleRow, error) {
	f, err := os.Open(r.cfg.Data.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(records) == 0 {
		return []ArticleRow{}, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	rows := make([]ArticleRow, 0, len(records)-1)
	for _, record := range records[1:] {
		var date *time.Time
		if raw := field(record, "date"); raw != "" {
			if parsed, err := time.Parse("2006-01-02", raw); err == nil {
				date = &parsed
			}
		}

		rows = append(rows, ArticleRow{
			ID:        field(record, "id"),
			Title:     field(record, "title"),
			Date:      date,
			Link:      field(record, "link"),
			Body:      field(record, "body"),
			Artists:   normalizer.ParseArtists(field(record, "mentioned_people")),
			Tag:       normalizer.CanonicalTag(field(record, "tag")),
			Author:    field(record, "author"),
			Sentiment: entity.SentimentUnknown,
		})
	}
	return rows, nil
}

func (r *fileDatasetRepository) readSentiment() ([]entity.SentimentRecord, error) {
	data, err := os.ReadFile(r.cfg.Data.SentimentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sentiment file: %w", err)
	}
	var records []entity.SentimentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment file: %w", err)
	}
	return records, nil
}

// joinSentiment attaches sentiment to rows, preferring the article ID carried
// by each response and falling back to position for files that predate the
// identifier. Rows without a usable response keep the unknown default.
func joinSentiment(rows []ArticleRow, records []entity.SentimentRecord) {
	byID := make(map[string]entity.SentimentRecord, len(records))
	for _, rec := range records {
		if rec.ArticleID != "" {
			byID[rec.ArticleID] = rec
		}
	}

	for i := range rows {
		var rec entity.SentimentRecord
		var ok bool
		if len(byID) > 0 && rows[i].ID != "" {
			rec, ok = byID[rows[i].ID]
		} else if i < len(records) {
			rec, ok = records[i], true
		}
		if !ok || rec.Sentiment == "" {
			continue
		}
		rows[i].Sentiment = rec.Sentiment
		rows[i].Confidence = rec.Score
	}
}
