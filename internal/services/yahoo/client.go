// Package yahoo reads quotes, candles, statements and symbol lookups from Yahoo Finance.
package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"StockBoard/internal/domain/models"
	drepo "StockBoard/internal/domain/repository"
	xhttp "StockBoard/pkg/http"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// BarIter is the subset of *chart.Iter the client consumes.
type BarIter interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

type Options struct {
	BaseURL      string
	SearchURL    string
	UserAgent    string
	Timeout      time.Duration
	HistoryRange time.Duration
}

type Client struct {
	opts Options
	http *xhttp.Client

	equity func(symbol string) (*finance.Equity, error)
	chart  func(p *chart.Params) BarIter
	now    func() time.Time
}

type Option func(*Client)

// WithEquityFunc replaces the finance-go equity lookup.
func WithEquityFunc(fn func(string) (*finance.Equity, error)) Option {
	return func(c *Client) { c.equity = fn }
}

// WithChartFunc replaces the finance-go chart iterator.
func WithChartFunc(fn func(*chart.Params) BarIter) Option {
	return func(c *Client) { c.chart = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(o Options, opts ...Option) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.HistoryRange <= 0 {
		o.HistoryRange = 5 * 24 * time.Hour
	}
	if o.UserAgent == "" {
		o.UserAgent = "Mozilla/5.0"
	}
	c := &Client{
		opts: o,
		http: xhttp.NewClient(
			xhttp.WithTimeout(o.Timeout),
			xhttp.WithHeader("User-Agent", o.UserAgent),
		),
		equity: equity.Get,
		chart:  func(p *chart.Params) BarIter { return chart.Get(p) },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ drepo.QuoteProvider      = (*Client)(nil)
	_ drepo.HistoryProvider    = (*Client)(nil)
	_ drepo.FinancialsProvider = (*Client)(nil)
	_ drepo.SymbolSearcher     = (*Client)(nil)
)

// Quote returns company metadata and market cap for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	eq, err := c.equity(symbol)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if eq == nil || eq.Symbol == "" {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, drepo.ErrNotFound)
	}

	q := &models.Quote{
		Symbol:    strings.ToUpper(eq.Symbol),
		Name:      eq.LongName,
		Currency:  eq.CurrencyID,
		MarketCap: decimal.NewFromInt(eq.MarketCap),
		Exchange:  eq.FullExchangeName,
	}
	if q.Name == "" {
		q.Name = eq.ShortName
	}
	if eq.RegularMarketPrice > 0 {
		p := decimal.NewFromFloat(eq.RegularMarketPrice)
		q.LastPrice = &p
	}
	return q, nil
}

// History returns hourly candles covering the configured range, oldest first.
func (c *Client) History(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	end := c.now().UTC()
	start := end.Add(-c.opts.HistoryRange)

	it := c.chart(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneHour,
	})

	bars := make([]models.PriceBar, 0, 64)
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := it.Bar()
		if b == nil {
			continue
		}
		bars = append(bars, models.PriceBar{
			Time:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, err)
	}
	return bars, nil
}
