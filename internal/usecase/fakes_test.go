package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"StockBoard/internal/domain/models"

	"github.com/shopspring/decimal"
)

var errUpstream = errors.New("upstream down")

type fakeProvider struct {
	quoteCalls, historyCalls, finCalls, searchCalls, classifyCalls int

	quote      *models.Quote
	bars       []models.PriceBar
	tables     map[models.Period]models.FinancialTable
	matches    []models.SearchMatch
	sentiment  models.SentimentResult
	err        error
	panicOn    string
	lastText   string
	deadlineOK bool
}

func (f *fakeProvider) maybePanic(op string) {
	if f.panicOn == op {
		panic("provider exploded")
	}
}

func (f *fakeProvider) Quote(_ context.Context, _ string) (*models.Quote, error) {
	f.quoteCalls++
	f.maybePanic(OpQuote)
	return f.quote, f.err
}

func (f *fakeProvider) History(_ context.Context, _ string) ([]models.PriceBar, error) {
	f.historyCalls++
	f.maybePanic(OpHistory)
	return f.bars, f.err
}

func (f *fakeProvider) Financials(_ context.Context, _ string, p models.Period) (models.FinancialTable, error) {
	f.finCalls++
	f.maybePanic(OpFinancials)
	return f.tables[p], f.err
}

func (f *fakeProvider) Search(ctx context.Context, _ string) ([]models.SearchMatch, error) {
	f.searchCalls++
	_, f.deadlineOK = ctx.Deadline()
	f.maybePanic(OpSearch)
	return f.matches, f.err
}

func (f *fakeProvider) Classify(_ context.Context, text string) (models.SentimentResult, error) {
	f.classifyCalls++
	f.lastText = text
	f.maybePanic(OpSentiment)
	return f.sentiment, f.err
}

func (f *fakeProvider) providers() Providers {
	return Providers{Quotes: f, History: f, Financials: f, Searcher: f, Classifier: f}
}

type articleFunc func(context.Context, string) (string, error)

func (fn articleFunc) Extract(ctx context.Context, url string) (string, error) { return fn(ctx, url) }

func appleProvider() *fakeProvider {
	q := func(y int, m time.Month) time.Time { return time.Date(y, m, 30, 0, 0, 0, 0, time.UTC) }
	price := decimal.RequireFromString("190.5")
	return &fakeProvider{
		quote: &models.Quote{
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			Currency:  "USD",
			MarketCap: decimal.NewFromInt(2_950_000_000_000),
			LastPrice: &price,
		},
		bars: []models.PriceBar{
			{Time: time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC), Open: decimal.NewFromInt(189), Close: decimal.NewFromInt(190)},
			{Time: time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC), Open: decimal.NewFromInt(190), Close: decimal.NewFromInt(191)},
		},
		tables: map[models.Period]models.FinancialTable{
			models.PeriodQuarterly: {Symbol: "AAPL", Period: models.PeriodQuarterly, Rows: []models.FinancialRow{
				{Label: "2024Q2", EndDate: q(2024, time.June), Items: map[string]decimal.Decimal{"TotalRevenue": decimal.NewFromInt(85_777_000_000), "NetIncome": decimal.NewFromInt(21_448_000_000)}},
				{Label: "2024Q1", EndDate: q(2024, time.March), Items: map[string]decimal.Decimal{"TotalRevenue": decimal.NewFromInt(90_753_000_000), "NetIncome": decimal.NewFromInt(23_636_000_000)}},
			}},
			models.PeriodAnnual: {Symbol: "AAPL", Period: models.PeriodAnnual, Rows: []models.FinancialRow{
				{Label: "2023", EndDate: q(2023, time.September), Items: map[string]decimal.Decimal{"Total Revenue": decimal.NewFromInt(383_285_000_000)}},
			}},
		},
		matches: []models.SearchMatch{
			{Symbol: "AAPL", Description: "APPLE INC", Type: "Common Stock"},
			{Symbol: "AAPL.SW", Description: "APPLE INC", Type: "Common Stock"},
			{Symbol: "APLE", Description: "APPLE HOSPITALITY REIT INC", Type: "REIT"},
		},
		sentiment: models.SentimentResult{Label: models.SentimentPositive, Confidence: 0.91},
	}
}

func longText(n int) string {
	return strings.Repeat("é", n)
}
