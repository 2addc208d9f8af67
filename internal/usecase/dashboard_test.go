package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/services/financials"
	"StockBoard/internal/services/format"
	"StockBoard/internal/services/recommend"
	"StockBoard/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 16, 0, 0, 0, time.UTC)

func newTestDashboard(p *fakeProvider, opts ...DashboardOption) *DashboardUseCase {
	f := NewFetcher(p.providers(), cache.NewMemoryCache(), DefaultFetcherConfig(), nil, nil)
	opts = append([]DashboardOption{WithDashboardClock(func() time.Time { return fixedNow })}, opts...)
	return NewDashboardUseCase(f, financials.NewResolver(nil, nil), format.New(), recommend.New(recommend.DefaultThreshold), opts...)
}

func TestRenderApple(t *testing.T) {
	u := newTestDashboard(appleProvider())
	s := models.Session{Query: "apple", Period: models.PeriodQuarterly, NewsText: "Apple beats estimates"}

	d := u.Render(context.Background(), s, "test")

	assert.Equal(t, []string{"AAPL - APPLE INC", "AAPL.SW - APPLE INC"}, d.Options)
	assert.Equal(t, "AAPL", d.Selected)
	assert.Empty(t, d.Warnings)

	require.NotNil(t, d.Company)
	assert.Equal(t, "Apple Inc.", d.Company.Name)
	assert.Equal(t, "USD 2.95T", d.Company.MarketCapDisplay)
	assert.Equal(t, "Native Currency: USD | Raw Value: 2,950,000,000,000", d.Company.Caption)

	require.NotNil(t, d.Price)
	assert.Len(t, d.Price.Bars, 2)

	require.NotNil(t, d.Financials)
	require.NotNil(t, d.Financials.Revenue)
	assert.Equal(t, "TotalRevenue", d.Financials.Revenue.Column)
	assert.Equal(t, "2024Q1", d.Financials.Revenue.Points[0].Label)
	require.NotNil(t, d.Financials.NetIncome)

	require.NotNil(t, d.Sentiment)
	assert.Equal(t, models.SentimentPositive, d.Sentiment.Label)
	assert.Equal(t, models.RecommendBuy, d.Sentiment.Recommendation)
	assert.Equal(t, SourceText, d.Sentiment.Source)
	assert.NotEmpty(t, d.Sentiment.Disclaimer)
}

func TestRenderIsIdempotent(t *testing.T) {
	u := newTestDashboard(appleProvider())
	s := models.Session{Query: "apple", Period: models.PeriodAnnual}

	a, err := json.Marshal(u.Render(context.Background(), s, "test"))
	require.NoError(t, err)
	b, err := json.Marshal(u.Render(context.Background(), s, "test"))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestRenderKeepsSelectionAmongMatches(t *testing.T) {
	u := newTestDashboard(appleProvider())
	d := u.Render(context.Background(), models.Session{Query: "apple", SelectedSymbol: "AAPL.SW"}, "test")
	assert.Equal(t, "AAPL.SW", d.Selected)

	d = u.Render(context.Background(), models.Session{Query: "apple", SelectedSymbol: "MSFT"}, "test")
	assert.Equal(t, "AAPL", d.Selected)
}

func TestRenderNoMatchesClearsSelection(t *testing.T) {
	p := appleProvider()
	p.matches = nil
	d := newTestDashboard(p).Render(context.Background(), models.Session{Query: "zzzz", SelectedSymbol: "AAPL"}, "test")

	assert.Empty(t, d.Selected)
	assert.Nil(t, d.Company)
	assert.Equal(t, 0, p.quoteCalls)
}

func TestRenderWithoutQuoteStopsAtWarning(t *testing.T) {
	p := appleProvider()
	p.quote = nil
	d := newTestDashboard(p).Render(context.Background(), models.Session{SelectedSymbol: "XXXX"}, "test")

	assert.Equal(t, []string{"no market data for XXXX"}, d.Warnings)
	assert.Nil(t, d.Company)
	assert.Nil(t, d.Price)
	assert.Nil(t, d.Financials)
	assert.Equal(t, 0, p.historyCalls)
}

func TestRenderAllProvidersFailing(t *testing.T) {
	p := &fakeProvider{err: errUpstream}
	d := newTestDashboard(p).Render(context.Background(),
		models.Session{Query: "apple", SelectedSymbol: "AAPL", NewsText: "hello"}, "test")

	assert.Empty(t, d.Matches)
	assert.Empty(t, d.Selected)
	require.NotNil(t, d.Sentiment)
	assert.Equal(t, models.SentimentNeutral, d.Sentiment.Label)
	assert.Equal(t, models.RecommendHold, d.Sentiment.Recommendation)
}

func TestRenderMissingColumnsAndDefaults(t *testing.T) {
	p := appleProvider()
	p.quote.Name = ""
	p.quote.Currency = ""
	p.bars = nil
	d := newTestDashboard(p).Render(context.Background(),
		models.Session{SelectedSymbol: "AAPL", Period: models.PeriodAnnual}, "test")

	require.NotNil(t, d.Company)
	assert.Equal(t, "N/A", d.Company.Name)
	assert.Equal(t, "USD", d.Company.Currency)
	assert.Nil(t, d.Price)

	require.NotNil(t, d.Financials)
	require.NotNil(t, d.Financials.Revenue)
	assert.Equal(t, "Total Revenue", d.Financials.Revenue.Column)
	assert.Nil(t, d.Financials.NetIncome)
	assert.Contains(t, d.Notes, "net income not reported for AAPL")
	assert.Contains(t, d.Notes, "no price history for AAPL")
}

func TestRenderNoFinancials(t *testing.T) {
	p := appleProvider()
	p.tables = nil
	d := newTestDashboard(p).Render(context.Background(), models.Session{SelectedSymbol: "AAPL"}, "test")

	assert.Nil(t, d.Financials)
	assert.Contains(t, d.Notes, "no financial statements for AAPL")
}

func TestSentimentFromURL(t *testing.T) {
	p := appleProvider()
	u := newTestDashboard(p, WithArticleExtractor(articleFunc(func(_ context.Context, url string) (string, error) {
		if url == "https://news.example/ok" {
			return "Apple reported record revenue.", nil
		}
		return "", errors.New("forbidden")
	})))

	sec, warns := u.Sentiment(context.Background(), "", "https://news.example/ok")
	assert.Empty(t, warns)
	assert.Equal(t, SourceURL, sec.Source)
	assert.Equal(t, "Apple reported record revenue.", p.lastText)

	p.classifyCalls = 0
	sec, warns = u.Sentiment(context.Background(), "", "https://news.example/blocked")
	assert.Len(t, warns, 1)
	assert.Equal(t, models.RecommendHold, sec.Recommendation)
	assert.Equal(t, 0, p.classifyCalls)
}

func TestSentimentLowConfidenceHolds(t *testing.T) {
	p := appleProvider()
	p.sentiment = models.SentimentResult{Label: models.SentimentNegative, Confidence: 0.59}
	sec, _ := newTestDashboard(p).Sentiment(context.Background(), "guidance cut", "")
	assert.Equal(t, models.RecommendHold, sec.Recommendation)
	assert.Equal(t, len("guidance cut"), sec.Characters)
}
