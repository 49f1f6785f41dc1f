package service

import (
	"context"
	"time"

	"celebrity-trends/internal/collector/config"
	"celebrity-trends/internal/collector/repository"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"
)

// CollectedArticle is one raw scraped article before assembly. RawDate keeps
// the source text verbatim: the pair (Title, RawDate) is the dedup key.
type CollectedArticle struct {
	Title           string
	RawDate         string
	Link            string
	Body            string
	Tag             string
	Author          string
	MentionedPeople []string
}

// Collector paginates the listing site and produces raw article records.
type Collector struct {
	cfg        *config.Config
	logger     *logger.Logger
	site       repository.VogueRepository
	recognizer repository.EntityRecognizer
}

// NewCollector creates a new Collector.
func NewCollector(cfg *config.Config, log *logger.Logger, site repository.VogueRepository, recognizer repository.EntityRecognizer) *Collector {
	return &Collector{
		cfg:        cfg,
		logger:     log,
		site:       site,
		recognizer: recognizer,
	}
}

// Collect walks listing pages 1..pages and returns the collected articles.
// Articles are processed strictly one at a time: the site session and the
// recognizer are shared and not safe for concurrent use. Failures on a single
// article skip that article, never the run; a page with no matching summaries
// ends the run early.
func (c *Collector) Collect(ctx context.Context, pages int) ([]CollectedArticle, error) {
	var collected []CollectedArticle
	seen := make(map[[2]string]struct{})

	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		summaries, err := c.site.FetchListing(ctx, page)
		if err != nil {
			c.logger.Error("Failed to fetch listing page, stopping pagination",
				logger.IntField("page", page), logger.ErrorField(err))
			break
		}
		if len(summaries) == 0 {
			c.logger.Info("No article summaries on page, stopping pagination", logger.IntField("page", page))
			break
		}

		c.logger.Info("Processing listing page",
			logger.IntField("page", page),
			logger.IntField("summaries", len(summaries)))

		for _, summary := range summaries {
			key := [2]string{summary.Title, summary.RawDate}
			if _, dup := seen[key]; dup {
				continue
			}

			article := c.processArticle(ctx, summary)
			collected = append(collected, article)
			seen[key] = struct{}{}

			c.logger.Info("Article collected",
				logger.StringField("title", summary.Title),
				logger.IntField("mentions", len(article.MentionedPeople)))

			select {
			case <-ctx.Done():
				return collected, ctx.Err()
			case <-time.After(c.cfg.Source.ArticleDelay):
			}
		}
	}

	return collected, nil
}

func (c *Collector) processArticle(ctx context.Context, summary repository.ArticleSummary) CollectedArticle {
	article := CollectedArticle{
		Title:           summary.Title,
		RawDate:         summary.RawDate,
		Link:            summary.Link,
		Tag:             summary.Tag,
		Author:          summary.Author,
		Body:            entity.NoBody,
		MentionedPeople: []string{},
	}

	body, err := c.site.FetchArticleBody(ctx, summary.Link)
	if err != nil {
		c.logger.Warn("Failed to extract article body",
			logger.StringField("link", summary.Link), logger.ErrorField(err))
		return article
	}
	article.Body = body

	if body == entity.NoBody {
		return article
	}

	people, err := c.recognizer.ExtractPeople(ctx, body)
	if err != nil {
		c.logger.Warn("Entity recognition failed, keeping article without mentions",
			logger.StringField("title", summary.Title), logger.ErrorField(err))
		return article
	}
	article.MentionedPeople = people

	return article
}
