package cli

import (
	"strings"
	"testing"
	"time"

	"StockBoard/internal/domain/models"
	"StockBoard/internal/services/format"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSparkline(t *testing.T) {
	vals := []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(3)}
	assert.Equal(t, "▁█▅", Sparkline(vals))
	assert.Equal(t, "▁▁", Sparkline([]decimal.Decimal{decimal.NewFromInt(2), decimal.NewFromInt(2)}))
	assert.Equal(t, "", Sparkline(nil))
}

func TestRenderDashboard(t *testing.T) {
	d := &models.Dashboard{
		Options:  []string{"AAPL - APPLE INC"},
		Selected: "AAPL",
		Company: &models.CompanySection{
			Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD",
			MarketCapDisplay: "USD 2.95T", Caption: "Native Currency: USD | Raw Value: 2,950,000,000,000",
		},
		Price: &models.PriceSection{Interval: "1h", Bars: []models.PriceBar{
			{Time: time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(190), Volume: 1200},
		}},
		Financials: &models.FinancialsSection{Period: models.PeriodAnnual, Revenue: &models.BarSeries{Points: []models.SeriesPoint{
			{Label: "2023", Value: decimal.NewFromInt(383_285_000_000)},
			{Label: "2024", Value: decimal.NewFromInt(391_035_000_000)},
		}}},
		Sentiment: &models.SentimentSection{
			Label: models.SentimentPositive, Confidence: 0.91, Recommendation: models.RecommendBuy,
			Disclaimer: "Advisory only. Not financial advice.",
		},
		Notes: []string{"net income not reported for AAPL"},
	}

	out := RenderDashboard(d, format.New())
	for _, want := range []string{
		"> AAPL - APPLE INC",
		"Apple Inc. (AAPL)",
		"USD 2.95T",
		"Raw Value: 2,950,000,000,000",
		"2024-05-10 14:00",
		"Financials (Annual)",
		"USD 391.04B",
		"BUY",
		"91.0% confidence",
		"net income not reported",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderWarningsOnly(t *testing.T) {
	out := RenderDashboard(&models.Dashboard{Warnings: []string{"no market data for XXXX"}}, format.New())
	assert.Contains(t, out, "no market data for XXXX")
	assert.False(t, strings.Contains(out, "Company Information"))
}
