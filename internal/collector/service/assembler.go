package service

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"celebrity-trends/internal/entity"
	"celebrity-trends/internal/normalizer"
	"celebrity-trends/pkg/logger"
)

// Assembler turns raw collected articles into the persisted dataset.
type Assembler struct {
	logger *logger.Logger
}

// NewAssembler creates a new Assembler.
func NewAssembler(log *logger.Logger) *Assembler {
	return &Assembler{logger: log}
}

// Assemble parses dates, drops bodyless records, normalizes list and link
// fields and attaches the stable article ID derived from the dedup key. The
// ID travels through enrichment so sentiment responses stay traceable to
// their source article.
func (a *Assembler) Assemble(items []CollectedArticle) []entity.Article {
	articles := make([]entity.Article, 0, len(items))
	seen := make(map[[2]string]struct{}, len(items))

	for _, item := range items {
		if item.Body == entity.NoBody || strings.TrimSpace(item.Body) == "" {
			a.logger.Debug("Dropping article without body", logger.StringField("title", item.Title))
			continue
		}

		key := [2]string{item.Title, item.RawDate}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		people := item.MentionedPeople
		if people == nil {
			people = []string{}
		}

		articles = append(articles, entity.Article{
			ID:              ArticleID(item.Title, item.RawDate),
			Title:           item.Title,
			Date:            normalizer.ParseSpanishDate(item.RawDate),
			Link:            item.Link,
			Body:            item.Body,
			MentionedPeople: people,
			Tag:             item.Tag,
			Author:          item.Author,
		})
	}

	return articles
}

// ArticleID derives the stable identifier from the dedup key.
func ArticleID(title, rawDate string) string {
	sum := md5.Sum([]byte(title + "|" + rawDate))
	return hex.EncodeToString(sum[:])
}

// WriteCSV persists the flat tabular form. The mentioned_people column is a
// JSON-encoded list the presentation layer reverses with its tolerant parser.
func (a *Assembler) WriteCSV(path string, articles []entity.Article) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "title", "date", "link", "body", "mentioned_people", "tag", "author"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, art := range articles {
		people, err := json.Marshal(art.MentionedPeople)
		if err != nil {
			return fmt.Errorf("failed to encode mentioned people: %w", err)
		}
		record := []string{
			art.ID,
			art.Title,
			art.DateString(),
			art.Link,
			art.Body,
			string(people),
			art.Tag,
			art.Author,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteJSON persists the record-oriented form with native lists.
func (a *Assembler) WriteJSON(path string, articles []entity.Article) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(articles, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode articles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
