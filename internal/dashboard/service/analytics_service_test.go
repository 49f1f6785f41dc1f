package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"celebrity-trends/internal/dashboard/config"
	"celebrity-trends/internal/dashboard/repository"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDataset struct {
	rows []repository.ArticleRow
	err  error
}

func (f *fakeDataset) Load() ([]repository.ArticleRow, error) {
	return f.rows, f.err
}

type fakeTrends struct {
	series   []entity.InterestSeries
	err      error
	keywords []string
}

func (f *fakeTrends) InterestOverTime(_ context.Context, keywords []string, _, _ time.Time) ([]entity.InterestSeries, error) {
	f.keywords = keywords
	return f.series, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func day(d int) *time.Time {
	ts := time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	return &ts
}

func newAnalytics(t *testing.T, dataset *fakeDataset, trends *fakeTrends) *Analytics {
	t.Helper()
	return NewAnalytics(&config.Config{}, testLogger(t), dataset, trends)
}

func TestOverviewEntityCounts(t *testing.T) {
	// Three rows with entities [A], [B], [A, B]: two unique entities and
	// four total mentions.
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "uno", Date: day(1), Tag: "Celebrities", Artists: []string{"Ana Torroja"}},
		{Title: "dos", Date: day(2), Tag: "Celebrities", Artists: []string{"Bad Bunny"}},
		{Title: "tres", Date: day(3), Tag: "Celebrities", Artists: []string{"Ana Torroja", "Bad Bunny"}},
	}}

	overview, err := newAnalytics(t, dataset, &fakeTrends{}).Overview(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Articles)
	require.Len(t, overview.Categories, 1)
	assert.Equal(t, "Celebrities", overview.Categories[0].Tag)
	assert.Equal(t, 2, overview.Categories[0].Entities)

	require.Len(t, overview.Scatter, 1)
	assert.Equal(t, 3, overview.Scatter[0].Articles)
	assert.Equal(t, 2, overview.Scatter[0].Entities)
	assert.Equal(t, 4, overview.Scatter[0].Mentions)
}

func TestOverviewTopMentionsAndConfidenceExplode(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "a", Date: day(1), Tag: "Moda", Artists: []string{"Zendaya Coleman"}, Sentiment: "positive", Confidence: 0.9},
		{Title: "b", Date: day(2), Tag: "Moda", Artists: []string{"Zendaya Coleman", "Tom Holland"}, Sentiment: "negative", Confidence: 0.7},
		{Title: "c", Date: day(3), Tag: "Moda", Artists: []string{}, Sentiment: "neutral", Confidence: 0.5},
	}}

	overview, err := newAnalytics(t, dataset, &fakeTrends{}).Overview(nil, nil)
	require.NoError(t, err)

	require.Len(t, overview.TopMentions, 2)
	assert.Equal(t, "Zendaya Coleman", overview.TopMentions[0].Entity)
	assert.Equal(t, 2, overview.TopMentions[0].Count)
	assert.Equal(t, []string{"Zendaya Coleman", "Tom Holland"}, overview.TopEntities)

	// Row b mentions two top entities, so it contributes two exploded
	// points; row c mentions nobody and contributes none.
	require.Len(t, overview.Confidence, 3)
	assert.Equal(t, "Zendaya Coleman", overview.Confidence[0].Entity)
	assert.Equal(t, 0.9, overview.Confidence[0].Confidence)
}

func TestRowsDateFiltering(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "sin fecha", Date: nil, Tag: "Moda"},
		{Title: "temprano", Date: day(1), Tag: "Moda"},
		{Title: "dentro", Date: day(10), Tag: "Moda"},
		{Title: "tarde", Date: day(20), Tag: "Moda"},
	}}

	overview, err := newAnalytics(t, dataset, &fakeTrends{}).Overview(day(5), day(15))
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Articles)
}

func TestRowsMinDateFromConfig(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "viejo", Date: day(1), Tag: "Moda"},
		{Title: "nuevo", Date: day(20), Tag: "Moda"},
	}}
	cfg := &config.Config{}
	cfg.Data.MinDate = "2025-03-10"

	svc := NewAnalytics(cfg, testLogger(t), dataset, &fakeTrends{})
	overview, err := svc.Overview(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.Articles)
}

func TestEntitiesSubstringFilter(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "a", Date: day(1), Artists: []string{"Zendaya Coleman", "Tom Holland"}},
		{Title: "b", Date: day(2), Artists: []string{"Taylor Swift"}},
	}}
	svc := newAnalytics(t, dataset, &fakeTrends{})

	all, err := svc.Entities("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Taylor Swift", "Tom Holland", "Zendaya Coleman"}, all)

	matched, err := svc.Entities("tAyL", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Taylor Swift"}, matched)

	none, err := svc.Entities("nadie", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEntityDetailReverseChronological(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "antiguo", Date: day(1), Link: "https://x/1", Artists: []string{"Zendaya Coleman"}, Sentiment: "positive", Confidence: 0.8},
		{Title: "reciente", Date: day(9), Link: "https://x/2", Artists: []string{"Zendaya Coleman"}, Sentiment: "positive", Confidence: 0.6},
		{Title: "ajeno", Date: day(5), Artists: []string{"Tom Holland"}, Sentiment: "negative"},
	}}
	svc := newAnalytics(t, dataset, &fakeTrends{})

	detail, err := svc.EntityDetail("Zendaya Coleman", nil, nil)
	require.NoError(t, err)

	require.Len(t, detail.Articles, 2)
	assert.Equal(t, "reciente", detail.Articles[0].Title)
	assert.Equal(t, "antiguo", detail.Articles[1].Title)
	assert.Equal(t, "#97C3E3", detail.Articles[0].Color)

	require.Len(t, detail.SentimentCounts, 1)
	assert.Equal(t, "positive", detail.SentimentCounts[0].Sentiment)
	assert.Equal(t, 2, detail.SentimentCounts[0].Articles)

	assert.Equal(t, []string{"2025-03-01", "2025-03-09"}, detail.PublishDates)
}

func TestOverviewTrendsDegradesOnUpstreamFailure(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "a", Date: day(1), Artists: []string{"Zendaya Coleman"}},
		{Title: "b", Date: day(20), Artists: []string{"Zendaya Coleman"}},
	}}
	trends := &fakeTrends{err: errors.New("upstream down")}

	resp, err := newAnalytics(t, dataset, trends).OverviewTrends(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Series)
	assert.Equal(t, "search interest unavailable", resp.Message)
}

func TestEntityTrendsPassesSingleKeyword(t *testing.T) {
	dataset := &fakeDataset{rows: []repository.ArticleRow{
		{Title: "a", Date: day(1), Artists: []string{"Zendaya Coleman"}},
		{Title: "b", Date: day(20), Artists: []string{"Zendaya Coleman"}},
	}}
	trends := &fakeTrends{series: []entity.InterestSeries{{Keyword: "Zendaya Coleman"}}}

	resp, err := newAnalytics(t, dataset, trends).EntityTrends(context.Background(), "Zendaya Coleman", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zendaya Coleman"}, trends.keywords)
	require.Len(t, resp.Series, 1)
	assert.Empty(t, resp.Message)
}
