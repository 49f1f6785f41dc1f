package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"celebrity-trends/internal/dashboard/config"
	"celebrity-trends/internal/entity"
	"celebrity-trends/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func writeFiles(t *testing.T, csvContent string, records []entity.SentimentRecord) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Data.CSVPath = filepath.Join(dir, "celebrities.csv")
	cfg.Data.SentimentPath = filepath.Join(dir, "sentiment.json")

	require.NoError(t, os.WriteFile(cfg.Data.CSVPath, []byte(csvContent), 0o644))
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.Data.SentimentPath, data, 0o644))
	return cfg
}

const sampleCSV = `id,title,date,link,body,mentioned_people,tag,author
id-1,Zendaya brilla,2025-03-15,https://x/1,cuerpo uno,"[""Zendaya Coleman""]",metgala 2025,Ana
id-2,Parejas del año,2025-03-16,https://x/2,cuerpo dos,"['Tom Holland', 'estilo de vida']",PAREJAS,Eva
id-3,Sin fecha,,https://x/3,cuerpo tres,[],MODA,Luz
`

func TestLoadParsesAndJoinsByID(t *testing.T) {
	cfg := writeFiles(t, sampleCSV, []entity.SentimentRecord{
		{ArticleID: "id-2", Sentiment: "negative", Score: 0.8},
		{ArticleID: "id-1", Sentiment: "positive", Score: 0.9},
	})

	rows, err := NewDatasetRepository(cfg, testLogger(t)).Load()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Row fields re-derived through the normalizers.
	assert.Equal(t, []string{"Zendaya Coleman"}, rows[0].Artists)
	assert.Equal(t, "Met Gala", rows[0].Tag)
	assert.Equal(t, []string{"Tom Holland"}, rows[1].Artists, "banned phrase removed")
	assert.Equal(t, "Parejas", rows[1].Tag)
	assert.Nil(t, rows[2].Date)

	// Key-based join: file order is reversed relative to the rows.
	assert.Equal(t, "positive", rows[0].Sentiment)
	assert.Equal(t, 0.9, rows[0].Confidence)
	assert.Equal(t, "negative", rows[1].Sentiment)

	// No response for id-3: unknown with zero confidence.
	assert.Equal(t, entity.SentimentUnknown, rows[2].Sentiment)
	assert.Equal(t, 0.0, rows[2].Confidence)
}

func TestLoadPositionalFallback(t *testing.T) {
	// Legacy sentiment files carry no article IDs; the join falls back to
	// position: row i gets entry i.
	cfg := writeFiles(t, sampleCSV, []entity.SentimentRecord{
		{Sentiment: "neutral", Score: 0.4},
		{Sentiment: "positive", Score: 0.6},
		{Sentiment: "negative", Score: 0.7},
	})

	rows, err := NewDatasetRepository(cfg, testLogger(t)).Load()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "neutral", rows[0].Sentiment)
	assert.Equal(t, "positive", rows[1].Sentiment)
	assert.Equal(t, "negative", rows[2].Sentiment)
}

func TestLoadMissingSentimentFileDefaultsUnknown(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Data.CSVPath = filepath.Join(dir, "celebrities.csv")
	cfg.Data.SentimentPath = filepath.Join(dir, "missing.json")
	require.NoError(t, os.WriteFile(cfg.Data.CSVPath, []byte(sampleCSV), 0o644))

	rows, err := NewDatasetRepository(cfg, testLogger(t)).Load()
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, entity.SentimentUnknown, row.Sentiment)
		assert.Equal(t, 0.0, row.Confidence)
	}
}

func TestLoadCachesForProcessLifetime(t *testing.T) {
	cfg := writeFiles(t, sampleCSV, nil)
	repo := NewDatasetRepository(cfg, testLogger(t))

	first, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, first, 3)

	// Removing the file does not disturb subsequent loads.
	require.NoError(t, os.Remove(cfg.Data.CSVPath))
	second, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
