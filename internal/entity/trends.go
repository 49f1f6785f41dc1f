package entity

import "time"

// InterestPoint is one sample of a search-interest series.
type InterestPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// InterestSeries is the search-interest signal for a single keyword over a
// date range.
type InterestSeries struct {
	Keyword string          `json:"keyword"`
	Points  []InterestPoint `json:"points"`
}
