package repository

import (
	"context"
	"errors"

	"StockBoard/internal/domain/models"
)

var (
	// ErrNotFound means the provider answered but has no data for the key.
	ErrNotFound = errors.New("not found")
	// ErrNoCredentials means a provider was selected without its credentials.
	ErrNoCredentials = errors.New("provider credentials not configured")
)

type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
}

type HistoryProvider interface {
	History(ctx context.Context, symbol string) ([]models.PriceBar, error)
}

type FinancialsProvider interface {
	Financials(ctx context.Context, symbol string, period models.Period) (models.FinancialTable, error)
}

type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]models.SearchMatch, error)
}

type Metrics interface {
	RecordProviderCall(op, outcome string, seconds float64)
	RecordCacheLookup(op string, hit bool)
	RecordRecommendation(rec string)
	RecordRender(transport string)
}
