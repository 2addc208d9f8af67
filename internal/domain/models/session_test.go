package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionApply(t *testing.T) {
	s := Session{Period: PeriodQuarterly, SelectedSymbol: "MSFT"}

	s, err := s.Apply(Action{Type: ActionSearch, Value: " apple "})
	require.NoError(t, err)
	assert.Equal(t, "apple", s.Query)
	assert.Empty(t, s.SelectedSymbol, "a new search resets the selection")

	s, err = s.Apply(Action{Type: ActionSelect, Value: "AAPL - APPLE INC"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", s.SelectedSymbol)

	s, err = s.Apply(Action{Type: ActionPeriod, Value: "Annual"})
	require.NoError(t, err)
	assert.Equal(t, PeriodAnnual, s.Period)

	s, err = s.Apply(Action{Type: ActionAnalyze, Value: "Apple beats estimates"})
	require.NoError(t, err)
	assert.Equal(t, "Apple beats estimates", s.NewsText)

	s, err = s.Apply(Action{Type: ActionAnalyzeURL, Value: "https://example.com/a"})
	require.NoError(t, err)
	assert.Empty(t, s.NewsText)
	assert.Equal(t, "https://example.com/a", s.NewsURL)

	s, err = s.Apply(Action{Type: ActionClearNews})
	require.NoError(t, err)
	assert.Empty(t, s.NewsURL)
}

func TestSessionApplyRejectsBadInput(t *testing.T) {
	s := Session{Period: PeriodQuarterly}

	got, err := s.Apply(Action{Type: ActionPeriod, Value: "weekly"})
	assert.Error(t, err)
	assert.Equal(t, s, got, "session unchanged on error")

	_, err = s.Apply(Action{Type: "dance"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestFinancialTableColumnsAndSort(t *testing.T) {
	d := func(y int) time.Time { return time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC) }
	tbl := FinancialTable{Rows: []FinancialRow{
		{Label: "2023", EndDate: d(2023), Items: map[string]decimal.Decimal{"TotalRevenue": decimal.NewFromInt(2)}},
		{Label: "2022", EndDate: d(2022), Items: map[string]decimal.Decimal{"NetIncome": decimal.NewFromInt(1)}},
	}}

	assert.Equal(t, []string{"NetIncome", "TotalRevenue"}, tbl.Columns())
	tbl.SortRows()
	assert.Equal(t, "2022", tbl.Rows[0].Label)
	assert.False(t, tbl.Empty())
	assert.True(t, FinancialTable{}.Empty())
}

func TestParseSentimentLabel(t *testing.T) {
	assert.Equal(t, SentimentPositive, ParseSentimentLabel(" Positive "))
	assert.Equal(t, SentimentNegative, ParseSentimentLabel("NEGATIVE"))
	assert.Equal(t, SentimentNeutral, ParseSentimentLabel("bullish"))
}
