package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"celebrity-trends/internal/dashboard/config"
	"celebrity-trends/internal/dashboard/dto"
	"celebrity-trends/internal/dashboard/repository"
	"celebrity-trends/pkg/logger"
)

const (
	topMentionsLimit   = 50
	topTrendsLimit     = 5
	topConfidenceLimit = 10
)

// Analytics computes the dashboard views over the joined dataset. All
// aggregates are derived in memory per request; the repositories do the
// caching.
type Analytics struct {
	cfg     *config.Config
	logger  *logger.Logger
	dataset repository.DatasetRepository
	trends  repository.TrendsRepository
}

// NewAnalytics creates a new Analytics service.
func NewAnalytics(cfg *config.Config, log *logger.Logger, dataset repository.DatasetRepository, trends repository.TrendsRepository) *Analytics {
	return &Analytics{
		cfg:     cfg,
		logger:  log,
		dataset: dataset,
		trends:  trends,
	}
}

// rows loads the dataset filtered to the requested date range. Rows without
// a parseable date, or before the configured minimum, never reach a view.
func (s *Analytics) rows(from, to *time.Time) ([]repository.ArticleRow, error) {
	all, err := s.dataset.Load()
	if err != nil {
		return nil, err
	}

	var minDate *time.Time
	if s.cfg.Data.MinDate != "" {
		if parsed, err := time.Parse("2006-01-02", s.cfg.Data.MinDate); err == nil {
			minDate = &parsed
		}
	}

	rows := make([]repository.ArticleRow, 0, len(all))
	for _, row := range all {
		if row.Date == nil {
			continue
		}
		if minDate != nil && row.Date.Before(*minDate) {
			continue
		}
		if from != nil && row.Date.Before(*from) {
			continue
		}
		if to != nil && row.Date.After(*to) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Overview builds the aggregate analysis payload for the date range.
func (s *Analytics) Overview(from, to *time.Time) (*dto.Overview, error) {
	rows, err := s.rows(from, to)
	if err != nil {
		return nil, err
	}

	top := topEntities(rows, topConfidenceLimit)
	topSet := make(map[string]struct{}, len(top))
	for _, e := range top {
		topSet[e.Entity] = struct{}{}
	}

	overview := &dto.Overview{
		Articles:    len(rows),
		Categories:  categoryCounts(rows),
		Scatter:     categoryScatter(rows),
		TopMentions: topEntities(rows, topMentionsLimit),
		TopEntities: entityNames(topEntities(rows, topTrendsLimit)),
		Confidence:  confidencePoints(rows, topSet),
		Palette:     dto.Palette,
	}
	return overview, nil
}

// OverviewTrends fetches the search-interest overlay for the top entities of
// the range. An upstream failure degrades to an empty payload with a message.
func (s *Analytics) OverviewTrends(ctx context.Context, from, to *time.Time) (*dto.TrendsResponse, error) {
	rows, err := s.rows(from, to)
	if err != nil {
		return nil, err
	}

	keywords := entityNames(topEntities(rows, topTrendsLimit))
	if len(keywords) == 0 {
		return &dto.TrendsResponse{Message: "no entities in the selected range"}, nil
	}

	return s.fetchTrends(ctx, keywords, rows, from, to)
}

// Entities returns the known entity list, optionally filtered by a
// case-insensitive substring query.
func (s *Analytics) Entities(query string, from, to *time.Time) ([]string, error) {
	rows, err := s.rows(from, to)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, row := range rows {
		for _, artist := range row.Artists {
			set[artist] = struct{}{}
		}
	}

	query = strings.ToLower(query)
	names := make([]string, 0, len(set))
	for name := range set {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// EntityDetail builds the per-entity payload: reverse-chronological article
// cards, sentiment distribution and publish-date markers.
func (s *Analytics) EntityDetail(name string, from, to *time.Time) (*dto.EntityDetail, error) {
	rows, err := s.rows(from, to)
	if err != nil {
		return nil, err
	}

	matched := make([]repository.ArticleRow, 0)
	for _, row := range rows {
		for _, artist := range row.Artists {
			if strings.EqualFold(artist, name) {
				matched = append(matched, row)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(*matched[j].Date)
	})

	detail := &dto.EntityDetail{
		Entity:          name,
		Articles:        make([]dto.ArticleCard, 0, len(matched)),
		SentimentCounts: []dto.LabelCount{},
		PublishDates:    []string{},
	}

	labelTally := make(map[string]int)
	dates := make(map[string]struct{})
	for _, row := range matched {
		detail.Articles = append(detail.Articles, dto.ArticleCard{
			Title:      row.Title,
			Date:       row.Date.Format("2006-01-02"),
			Link:       row.Link,
			Sentiment:  row.Sentiment,
			Confidence: row.Confidence,
			Color:      dto.SentimentColor(row.Sentiment),
		})
		labelTally[row.Sentiment]++
		dates[row.Date.Format("2006-01-02")] = struct{}{}
	}

	for label, count := range labelTally {
		detail.SentimentCounts = append(detail.SentimentCounts, dto.LabelCount{
			Sentiment: label,
			Articles:  count,
			Color:     dto.SentimentColor(label),
		})
	}
	sort.Slice(detail.SentimentCounts, func(i, j int) bool {
		if detail.SentimentCounts[i].Articles != detail.SentimentCounts[j].Articles {
			return detail.SentimentCounts[i].Articles > detail.SentimentCounts[j].Articles
		}
		return detail.SentimentCounts[i].Sentiment < detail.SentimentCounts[j].Sentiment
	})

	for d := range dates {
		detail.PublishDates = append(detail.PublishDates, d)
	}
	sort.Strings(detail.PublishDates)

	return detail, nil
}

// EntityTrends fetches the search-interest series for a single entity.
func (s *Analytics) EntityTrends(ctx context.Context, name string, from, to *time.Time) (*dto.TrendsResponse, error) {
	rows, err := s.rows(from, to)
	if err != nil {
		return nil, err
	}
	return s.fetchTrends(ctx, []string{name}, rows, from, to)
}

func (s *Analytics) fetchTrends(ctx context.Context, keywords []string, rows []repository.ArticleRow, from, to *time.Time) (*dto.TrendsResponse, error) {
	start, end, ok := rangeBounds(rows, from, to)
	if !ok {
		return &dto.TrendsResponse{Message: "no dated articles in the selected range"}, nil
	}

	series, err := s.trends.InterestOverTime(ctx, keywords, start, end)
	if err != nil {
		s.logger.Error("Search-interest fetch failed", logger.ErrorField(err))
		return &dto.TrendsResponse{Message: "search interest unavailable"}, nil
	}
	if len(series) == 0 {
		return &dto.TrendsResponse{Message: fmt.Sprintf("no search interest for %s", strings.Join(keywords, ", "))}, nil
	}
	return &dto.TrendsResponse{Series: series}, nil
}

// rangeBounds resolves the effective date range: explicit bounds win, the
// dataset's own extent fills the gaps.
func rangeBounds(rows []repository.ArticleRow, from, to *time.Time) (time.Time, time.Time, bool) {
	if from != nil && to != nil {
		return *from, *to, true
	}
	if len(rows) == 0 {
		return time.Time{}, time.Time{}, false
	}

	min, max := *rows[0].Date, *rows[0].Date
	for _, row := range rows[1:] {
		if row.Date.Before(min) {
			min = *row.Date
		}
		if row.Date.After(max) {
			max = *row.Date
		}
	}
	if from != nil {
		min = *from
	}
	if to != nil {
		max = *to
	}
	return min, max, true
}

// categoryCounts ranks categories by unique mentioned entities.
func categoryCounts(rows []repository.ArticleRow) []dto.CategoryCount {
	perTag := make(map[string]map[string]struct{})
	for _, row := range rows {
		set, ok := perTag[row.Tag]
		if !ok {
			set = make(map[string]struct{})
			perTag[row.Tag] = set
		}
		for _, artist := range row.Artists {
			set[artist] = struct{}{}
		}
	}

	counts := make([]dto.CategoryCount, 0, len(perTag))
	for tag, set := range perTag {
		counts = append(counts, dto.CategoryCount{Tag: tag, Entities: len(set)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Entities != counts[j].Entities {
			return counts[i].Entities > counts[j].Entities
		}
		return counts[i].Tag < counts[j].Tag
	})
	return counts
}

// categoryScatter builds the per-category article/entity/mention points.
func categoryScatter(rows []repository.ArticleRow) []dto.CategoryScatter {
	type agg struct {
		articles int
		entities map[string]struct{}
		mentions int
	}
	perTag := make(map[string]*agg)
	for _, row := range rows {
		a, ok := perTag[row.Tag]
		if !ok {
			a = &agg{entities: make(map[string]struct{})}
			perTag[row.Tag] = a
		}
		a.articles++
		a.mentions += len(row.Artists)
		for _, artist := range row.Artists {
			a.entities[artist] = struct{}{}
		}
	}

	scatter := make([]dto.CategoryScatter, 0, len(perTag))
	for tag, a := range perTag {
		scatter = append(scatter, dto.CategoryScatter{
			Tag:      tag,
			Articles: a.articles,
			Entities: len(a.entities),
			Mentions: a.mentions,
		})
	}
	sort.Slice(scatter, func(i, j int) bool { return scatter[i].Tag < scatter[j].Tag })
	return scatter
}

// topEntities counts every mention across rows and returns the most
// mentioned entities, ties broken alphabetically.
func topEntities(rows []repository.ArticleRow, limit int) []dto.EntityCount {
	tally := make(map[string]int)
	for _, row := range rows {
		for _, artist := range row.Artists {
			tally[artist]++
		}
	}

	counts := make([]dto.EntityCount, 0, len(tally))
	for entity, count := range tally {
		counts = append(counts, dto.EntityCount{Entity: entity, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Entity < counts[j].Entity
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func entityNames(counts []dto.EntityCount) []string {
	names := make([]string, 0, len(counts))
	for _, c := range counts {
		names = append(names, c.Entity)
	}
	return names
}

// confidencePoints explodes each article once per qualifying mentioned
// entity, keeping only entities of the top set.
func confidencePoints(rows []repository.ArticleRow, topSet map[string]struct{}) []dto.ConfidencePoint {
	points := make([]dto.ConfidencePoint, 0)
	for _, row := range rows {
		for _, artist := range row.Artists {
			if _, ok := topSet[artist]; !ok {
				continue
			}
			points = append(points, dto.ConfidencePoint{
				Entity:     artist,
				Title:      row.Title,
				Sentiment:  row.Sentiment,
				Confidence: row.Confidence,
			})
		}
	}
	return points
}
