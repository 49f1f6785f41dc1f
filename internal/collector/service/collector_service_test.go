package service

import (
	"context"
	"errors"
	"testing"

	"celebrity-trends/internal/collector/config"
	"celebrity-trends/internal/collector/repository"
	"celebrity-trends/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSite struct {
	pages  map[int][]repository.ArticleSummary
	bodies map[string]string
	errs   map[string]error
}

func (f *fakeSite) FetchListing(_ context.Context, page int) ([]repository.ArticleSummary, error) {
	return f.pages[page], nil
}

func (f *fakeSite) FetchArticleBody(_ context.Context, link string) (string, error) {
	if err := f.errs[link]; err != nil {
		return "", err
	}
	if body, ok := f.bodies[link]; ok {
		return body, nil
	}
	return entity.NoBody, nil
}

type fakeRecognizer struct {
	people map[string][]string
	err    error
}

func (f *fakeRecognizer) ExtractPeople(_ context.Context, text string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.people[text], nil
}

func newTestCollector(t *testing.T, site *fakeSite, rec *fakeRecognizer) *Collector {
	t.Helper()
	return NewCollector(&config.Config{}, testLogger(t), site, rec)
}

func TestCollectDeduplicatesAndStopsOnEmptyPage(t *testing.T) {
	site := &fakeSite{
		pages: map[int][]repository.ArticleSummary{
			1: {
				{Title: "A", RawDate: "1 de enero de 2025", Link: "https://x/a", Tag: "MODA", Author: "Ana"},
				{Title: "A", RawDate: "1 de enero de 2025", Link: "https://x/a", Tag: "MODA", Author: "Ana"},
			},
			2: {},
			3: {
				{Title: "Nunca", RawDate: "2 de enero de 2025", Link: "https://x/n"},
			},
		},
		bodies: map[string]string{
			"https://x/a": "cuerpo del articulo",
		},
	}
	rec := &fakeRecognizer{people: map[string][]string{
		"cuerpo del articulo": {"Zendaya Coleman"},
	}}

	collected, err := newTestCollector(t, site, rec).Collect(context.Background(), 3)
	require.NoError(t, err)

	// Page 2 is empty, so page 3 is never visited and the duplicate on
	// page 1 collapses to one record.
	require.Len(t, collected, 1)
	assert.Equal(t, "A", collected[0].Title)
	assert.Equal(t, []string{"Zendaya Coleman"}, collected[0].MentionedPeople)
}

func TestCollectBodyFailureDegradesToSentinel(t *testing.T) {
	site := &fakeSite{
		pages: map[int][]repository.ArticleSummary{
			1: {
				{Title: "Rota", RawDate: "1 de enero de 2025", Link: "https://x/broken"},
				{Title: "Sana", RawDate: "1 de enero de 2025", Link: "https://x/ok"},
			},
		},
		bodies: map[string]string{"https://x/ok": "texto"},
		errs:   map[string]error{"https://x/broken": errors.New("timeout")},
	}
	rec := &fakeRecognizer{}

	collected, err := newTestCollector(t, site, rec).Collect(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, collected, 2)

	assert.Equal(t, entity.NoBody, collected[0].Body)
	assert.Empty(t, collected[0].MentionedPeople)
	assert.Equal(t, "texto", collected[1].Body)
}

func TestCollectRecognizerFailureKeepsArticle(t *testing.T) {
	site := &fakeSite{
		pages: map[int][]repository.ArticleSummary{
			1: {{Title: "A", RawDate: "1 de enero de 2025", Link: "https://x/a"}},
		},
		bodies: map[string]string{"https://x/a": "texto"},
	}
	rec := &fakeRecognizer{err: errors.New("model unavailable")}

	collected, err := newTestCollector(t, site, rec).Collect(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, collected, 1)
	assert.Equal(t, "texto", collected[0].Body)
	assert.Empty(t, collected[0].MentionedPeople)
}
