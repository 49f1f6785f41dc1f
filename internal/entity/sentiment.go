package entity

// SentimentRecord is the raw response of the sentiment service for one
// article. Records are persisted in request order; ArticleID additionally ties
// each response back to its source article so the join does not depend on
// file order alone.
type SentimentRecord struct {
	ArticleID string  `json:"article_id,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// SentimentUnknown is attached to articles with no usable sentiment response.
const SentimentUnknown = "unknown"
