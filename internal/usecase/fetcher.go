package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockBoard/internal/domain/models"
	domrepo "StockBoard/internal/domain/repository"
	domsvc "StockBoard/internal/domain/service"
	"StockBoard/pkg/cache"
	applogger "StockBoard/pkg/logger"
	"StockBoard/pkg/metrics"
	"StockBoard/pkg/util"
)

const (
	OpQuote      = "quote"
	OpHistory    = "history"
	OpFinancials = "financials"
	OpSearch     = "search"
	OpSentiment  = "sentiment"
)

// FetcherConfig holds the per-operation TTLs and search and classifier limits.
type FetcherConfig struct {
	QuoteTTL      time.Duration
	HistoryTTL    time.Duration
	FinancialsTTL time.Duration
	SearchTTL     time.Duration
	SentimentTTL  time.Duration

	SearchTimeout time.Duration
	SearchLimit   int
	TypeFilter    string
	MaxChars      int
}

func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		QuoteTTL:      5 * time.Minute,
		HistoryTTL:    5 * time.Minute,
		FinancialsTTL: 6 * time.Hour,
		SearchTTL:     time.Hour,
		SentimentTTL:  time.Hour,
		SearchTimeout: 5 * time.Second,
		SearchLimit:   15,
		TypeFilter:    "Common Stock",
		MaxChars:      2000,
	}
}

// Fetcher wraps every provider call so that it never fails. Errors and panics
// become the operation's empty value, and only successes are memoized.
type Fetcher struct {
	quotes     domrepo.QuoteProvider
	history    domrepo.HistoryProvider
	financials domrepo.FinancialsProvider
	searcher   domrepo.SymbolSearcher
	classifier domsvc.SentimentClassifier

	cache   cache.Service
	cfg     FetcherConfig
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

type Providers struct {
	Quotes     domrepo.QuoteProvider
	History    domrepo.HistoryProvider
	Financials domrepo.FinancialsProvider
	Searcher   domrepo.SymbolSearcher
	Classifier domsvc.SentimentClassifier
}

// NewFetcher builds a Fetcher. A nil cache disables memoization.
func NewFetcher(p Providers, c cache.Service, cfg FetcherConfig, m domrepo.Metrics, l *applogger.Logger) *Fetcher {
	if m == nil {
		m = metrics.Nop{}
	}
	if l == nil {
		l = applogger.NewNop()
	}
	return &Fetcher{
		quotes:     p.Quotes,
		history:    p.History,
		financials: p.Financials,
		searcher:   p.Searcher,
		classifier: p.Classifier,
		cache:      c,
		cfg:        cfg,
		metrics:    m,
		logger:     l.With("fetcher"),
	}
}

var errNoProvider = errors.New("no provider configured")

// Quote returns company metadata, or nil when unavailable.
func (f *Fetcher) Quote(ctx context.Context, symbol string) *models.Quote {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil
	}
	q, ok := memo(ctx, f, OpQuote, symbol, f.cfg.QuoteTTL, func(ctx context.Context) (*models.Quote, error) {
		if f.quotes == nil {
			return nil, errNoProvider
		}
		q, err := f.quotes.Quote(ctx, symbol)
		if err == nil && q == nil {
			err = domrepo.ErrNotFound
		}
		return q, err
	})
	if !ok {
		return nil
	}
	return q
}

// PriceHistory returns recent hourly bars oldest first, or an empty slice.
func (f *Fetcher) PriceHistory(ctx context.Context, symbol string) []models.PriceBar {
	symbol = util.NormalizeSymbol(symbol)
	if symbol == "" {
		return []models.PriceBar{}
	}
	bars, ok := memo(ctx, f, OpHistory, symbol, f.cfg.HistoryTTL, func(ctx context.Context) ([]models.PriceBar, error) {
		if f.history == nil {
			return nil, errNoProvider
		}
		return f.history.History(ctx, symbol)
	})
	if !ok || bars == nil {
		return []models.PriceBar{}
	}
	return bars
}

func (f *Fetcher) QuarterlyFinancials(ctx context.Context, symbol string) models.FinancialTable {
	return f.Financials(ctx, symbol, models.PeriodQuarterly)
}

func (f *Fetcher) AnnualFinancials(ctx context.Context, symbol string) models.FinancialTable {
	return f.Financials(ctx, symbol, models.PeriodAnnual)
}

// Financials returns statement rows for period, or an empty table.
func (f *Fetcher) Financials(ctx context.Context, symbol string, period models.Period) models.FinancialTable {
	symbol = util.NormalizeSymbol(symbol)
	empty := models.FinancialTable{Symbol: symbol, Period: period, Rows: []models.FinancialRow{}}
	if symbol == "" {
		return empty
	}
	key := cache.GenerateKeyWithParams(symbol, period)
	t, ok := memo(ctx, f, OpFinancials, key, f.cfg.FinancialsTTL, func(ctx context.Context) (models.FinancialTable, error) {
		if f.financials == nil {
			return models.FinancialTable{}, errNoProvider
		}
		return f.financials.Financials(ctx, symbol, period)
	})
	if !ok || t.Empty() {
		return empty
	}
	t.SortRows()
	return t
}

// Search returns up to SearchLimit distinct common-stock matches. An empty
// query makes no provider call.
func (f *Fetcher) Search(ctx context.Context, query string) []models.SearchMatch {
	query = util.NormalizeSymbol(query)
	if query == "" {
		return []models.SearchMatch{}
	}
	matches, ok := memo(ctx, f, OpSearch, query, f.cfg.SearchTTL, func(ctx context.Context) ([]models.SearchMatch, error) {
		if f.searcher == nil {
			return nil, errNoProvider
		}
		if f.cfg.SearchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.cfg.SearchTimeout)
			defer cancel()
		}
		raw, err := f.searcher.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		return f.filterMatches(raw), nil
	})
	if !ok || matches == nil {
		return []models.SearchMatch{}
	}
	return matches
}

func (f *Fetcher) filterMatches(raw []models.SearchMatch) []models.SearchMatch {
	out := make([]models.SearchMatch, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, m := range raw {
		if f.cfg.TypeFilter != "" && !strings.EqualFold(strings.TrimSpace(m.Type), f.cfg.TypeFilter) {
			continue
		}
		sym := util.NormalizeSymbol(m.Symbol)
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		m.Symbol = sym
		out = append(out, m)
		if f.cfg.SearchLimit > 0 && len(out) == f.cfg.SearchLimit {
			break
		}
	}
	return out
}

// Classify scores text truncated to MaxChars runes. Blank text or any failure
// yields neutral with zero confidence.
func (f *Fetcher) Classify(ctx context.Context, text string) models.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return models.NeutralSentiment()
	}
	if f.cfg.MaxChars > 0 {
		text = util.TruncateRunes(text, f.cfg.MaxChars)
	}
	res, ok := memo(ctx, f, OpSentiment, cache.HashKey(text), f.cfg.SentimentTTL, func(ctx context.Context) (models.SentimentResult, error) {
		if f.classifier == nil {
			return models.SentimentResult{}, errNoProvider
		}
		return f.classifier.Classify(ctx, text)
	})
	if !ok {
		return models.NeutralSentiment()
	}
	return res
}

// ClearCache drops every memoized result.
func (f *Fetcher) ClearCache(ctx context.Context) error {
	if f.cache == nil {
		return nil
	}
	return f.cache.DeleteByPattern(ctx, cache.BuildPattern(""))
}

// CacheShared reports whether memoized results outlive this process.
func (f *Fetcher) CacheShared() bool {
	return f.cache != nil && cache.Shared(f.cache)
}

// memo reads op:key from the cache or calls fn, recovering panics. The bool is
// false when fn failed; failures are logged, counted and never stored.
func memo[T any](ctx context.Context, f *Fetcher, op, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, bool) {
	ck := cache.GenerateKey(op, key)
	if f.cache != nil {
		var cached T
		if err := f.cache.Get(ctx, ck, &cached); err == nil {
			f.metrics.RecordCacheLookup(op, true)
			return cached, true
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			f.logger.Debug("cache read failed", applogger.String("key", ck), applogger.Error(err))
		}
		f.metrics.RecordCacheLookup(op, false)
	}

	start := time.Now()
	v, err := call(ctx, fn)
	elapsed := time.Since(start)

	if err != nil {
		f.metrics.RecordProviderCall(op, "error", elapsed.Seconds())
		f.logger.Warn("provider call failed",
			applogger.String("operation", op),
			applogger.String("key", key),
			applogger.Duration("elapsed", elapsed),
			applogger.Error(err),
		)
		var zero T
		return zero, false
	}
	f.metrics.RecordProviderCall(op, "ok", elapsed.Seconds())

	if f.cache != nil {
		if err := f.cache.Set(ctx, ck, v, ttl); err != nil {
			f.logger.Debug("cache write failed", applogger.String("key", ck), applogger.Error(err))
		}
	}
	return v, true
}

func call[T any](ctx context.Context, fn func(context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return fn(ctx)
}
