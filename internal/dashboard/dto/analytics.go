package dto

import "celebrity-trends/internal/entity"

// CategoryCount ranks a category by the unique entities across its articles.
type CategoryCount struct {
	Tag      string `json:"tag"`
	Entities int    `json:"entities"`
}

// CategoryScatter is one per-category point of the article/entity/mention
// scatter view.
type CategoryScatter struct {
	Tag      string `json:"tag"`
	Articles int    `json:"articles"`
	Entities int    `json:"entities"`
	Mentions int    `json:"mentions"`
}

// EntityCount is one treemap cell: an entity and its article mentions.
type EntityCount struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
}

// ConfidencePoint is one exploded article/entity row of the sentiment
// confidence distribution.
type ConfidencePoint struct {
	Entity     string  `json:"entity"`
	Title      string  `json:"title"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// Overview is the aggregate analysis payload.
type Overview struct {
	Articles    int               `json:"articles"`
	Categories  []CategoryCount   `json:"categories"`
	Scatter     []CategoryScatter `json:"scatter"`
	TopMentions []EntityCount     `json:"top_mentions"`
	TopEntities []string          `json:"top_entities"`
	Confidence  []ConfidencePoint `json:"confidence"`
	Palette     map[string]string `json:"palette"`
}

// ArticleCard is one article of the per-entity card list.
type ArticleCard struct {
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	Link       string  `json:"link,omitempty"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color"`
}

// LabelCount is the article count of one sentiment label.
type LabelCount struct {
	Sentiment string `json:"sentiment"`
	Articles  int    `json:"articles"`
	Color     string `json:"color"`
}

// EntityDetail is the per-entity analysis payload.
type EntityDetail struct {
	Entity          string        `json:"entity"`
	Articles        []ArticleCard `json:"articles"`
	SentimentCounts []LabelCount  `json:"sentiment_counts"`
	PublishDates    []string      `json:"publish_dates"`
}

// TrendsResponse carries search-interest series; Message is set when the
// upstream yielded nothing for the requested range.
type TrendsResponse struct {
	Series  []entity.InterestSeries `json:"series"`
	Message string                  `json:"message,omitempty"`
}
