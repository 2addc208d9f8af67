package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/services/financials"
	"StockBoard/internal/services/format"
	"StockBoard/internal/services/recommend"
	"StockBoard/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubData struct{}

func (stubData) Quote(_ context.Context, sym string) (*models.Quote, error) {
	return &models.Quote{Symbol: sym, Name: "Apple Inc.", Currency: "USD", MarketCap: decimal.NewFromInt(2_950_000_000_000)}, nil
}

func (stubData) Search(_ context.Context, q string) ([]models.SearchMatch, error) {
	if q != "APPLE" {
		return nil, nil
	}
	return []models.SearchMatch{{Symbol: "AAPL", Description: "APPLE INC", Type: "Common Stock"}}, nil
}

func (stubData) Classify(context.Context, string) (models.SentimentResult, error) {
	return models.SentimentResult{Label: models.SentimentPositive, Confidence: 0.8}, nil
}

func stubDashboard() *usecase.DashboardUseCase {
	s := stubData{}
	f := usecase.NewFetcher(usecase.Providers{Quotes: s, Searcher: s, Classifier: s}, nil, usecase.DefaultFetcherConfig(), nil, nil)
	return usecase.NewDashboardUseCase(f, financials.NewResolver(nil, nil), format.New(), recommend.New(0.6))
}

func TestRunInteractive(t *testing.T) {
	input := strings.Join([]string{
		"zzzz",            // no matches
		"apple",           // query
		"1",               // select
		"2",               // annual
		"Apple beats estimates",
		"",                // quit
	}, "\n") + "\n"

	var out bytes.Buffer
	sel := newPlainSelector(strings.NewReader(input), &out)
	require.NoError(t, runInteractive(context.Background(), stubDashboard(), sel, &out))

	s := out.String()
	assert.Contains(t, s, `No common stock matches for "ZZZZ"`)
	assert.Contains(t, s, "USD 2.95T")
	assert.Contains(t, s, "BUY")
}

func TestRunInteractiveStopsAtEOF(t *testing.T) {
	sel := newPlainSelector(strings.NewReader("apple\n"), &bytes.Buffer{})
	assert.NoError(t, runInteractive(context.Background(), stubDashboard(), sel, &bytes.Buffer{}))
}

func TestNewsAction(t *testing.T) {
	assert.Equal(t, models.ActionClearNews, newsAction("  ").Type)
	assert.Equal(t, models.ActionAnalyzeURL, newsAction("https://news.example/a").Type)
	assert.Equal(t, models.ActionAnalyze, newsAction("Apple beats").Type)
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "StockBoard dev\n", out.String())
}

func TestCacheClearedMessage(t *testing.T) {
	assert.Equal(t, "Cache cleared.", cacheClearedMessage(true, true))
	assert.Contains(t, cacheClearedMessage(false, true), "Redis is unreachable")
	assert.Contains(t, cacheClearedMessage(false, false), "enable cache.redis")
}

func TestCacheClearWithMemoryCache(t *testing.T) {
	for _, name := range []string{"REDIS_HOST", "FINNHUB_API_KEY", "LLM_API_KEY", "LONGPORT_APP_KEY", "LONGPORT_APP_SECRET", "LONGPORT_ACCESS_TOKEN"} {
		t.Setenv(name, "")
		t.Setenv(name+"_FILE", "")
	}
	t.Setenv("SENTIMENT_BACKEND", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "cache", "clear"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Memory cache cleared")
}
