package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"celebrity-trends/internal/enricher/config"
	"celebrity-trends/internal/enricher/repository"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"
	"celebrity-trends/pkg/utils"
)

// maxRequestChars is the character budget of the sentiment service.
const maxRequestChars = 1000

// Enricher attaches sentiment classifications to the assembled dataset.
type Enricher struct {
	cfg        *config.Config
	logger     *logger.Logger
	classifier repository.SentimentClassifier
}

// NewEnricher creates a new Enricher.
func NewEnricher(cfg *config.Config, log *logger.Logger, classifier repository.SentimentClassifier) *Enricher {
	return &Enricher{
		cfg:        cfg,
		logger:     log,
		classifier: classifier,
	}
}

// Run reads the record dataset, classifies every article in original order
// and persists the raw responses to the output file in that same order.
// A per-article service failure still appends a response so subsequent
// indices never shift; only an unreadable input file aborts the stage.
func (e *Enricher) Run(ctx context.Context) error {
	data, err := os.ReadFile(e.cfg.Data.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read input dataset: %w", err)
	}

	var articles []entity.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return fmt.Errorf("failed to parse input dataset: %w", err)
	}

	e.logger.Info("Starting sentiment enrichment", logger.IntField("articles", len(articles)))

	responses := make([]entity.SentimentRecord, 0, len(articles))
	tally := make(map[string]int)

	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return err
		}

		text := utils.Truncate(strings.ReplaceAll(article.Body, "\n", " "), maxRequestChars)

		record, err := e.classifier.Classify(ctx, text)
		if err != nil {
			e.logger.Error("Sentiment classification failed",
				logger.IntField("index", i),
				logger.StringField("title", article.Title),
				logger.ErrorField(err))
			responses = append(responses, entity.SentimentRecord{
				ArticleID: article.ID,
				Error:     err.Error(),
			})
			continue
		}

		record.ArticleID = article.ID
		responses = append(responses, *record)
		tally[record.Sentiment]++

		e.logger.Info("Article classified",
			logger.StringField("text", text),
			logger.StringField("sentiment", record.Sentiment),
			logger.Float64Field("score", record.Score))
	}

	for label, count := range tally {
		e.logger.Info("Sentiment tally", logger.StringField("label", label), logger.IntField("count", count))
	}

	return e.writeResponses(responses)
}

func (e *Enricher) writeResponses(responses []entity.SentimentRecord) error {
	if err := os.MkdirAll(filepath.Dir(e.cfg.Data.OutputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(responses, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode sentiment responses: %w", err)
	}
	if err := os.WriteFile(e.cfg.Data.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sentiment file: %w", err)
	}

	e.logger.Info("Sentiment responses written",
		logger.StringField("path", e.cfg.Data.OutputPath),
		logger.IntField("responses", len(responses)))
	return nil
}
