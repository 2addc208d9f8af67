// Package longport reads quotes and hourly candles from the Longport OpenAPI.
package longport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"StockBoard/internal/domain/models"
	drepo "StockBoard/internal/domain/repository"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"
	"github.com/shopspring/decimal"
)

// API is the part of the Longport quote context used here.
type API interface {
	StaticInfo(ctx context.Context, symbols []string) ([]*quote.StaticInfo, error)
	LastDone(ctx context.Context, symbol string) (*decimal.Decimal, error)
	Candlesticks(ctx context.Context, symbol string, period quote.Period, count int32, adjust quote.AdjustType) ([]*quote.Candlestick, error)
	Close() error
}

type quoteAPI struct {
	qc *quote.QuoteContext
}

func (a *quoteAPI) StaticInfo(ctx context.Context, symbols []string) ([]*quote.StaticInfo, error) {
	return a.qc.StaticInfo(ctx, symbols)
}

func (a *quoteAPI) LastDone(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	qs, err := a.qc.Quote(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 || qs[0] == nil {
		return nil, nil
	}
	return qs[0].LastDone, nil
}

func (a *quoteAPI) Candlesticks(ctx context.Context, symbol string, period quote.Period, count int32, adjust quote.AdjustType) ([]*quote.Candlestick, error) {
	return a.qc.Candlesticks(ctx, symbol, period, count, adjust)
}

func (a *quoteAPI) Close() error {
	return a.qc.Close()
}

type Credentials struct {
	AppKey      string
	AppSecret   string
	AccessToken string
}

func (c Credentials) complete() bool {
	return c.AppKey != "" && c.AppSecret != "" && c.AccessToken != ""
}

type Client struct {
	api         API
	candleCount int
}

// New opens a quote context. All three credentials are required.
func New(creds Credentials, candleCount int) (*Client, error) {
	if !creds.complete() {
		return nil, fmt.Errorf("longport: %w", drepo.ErrNoCredentials)
	}
	conf, err := lpconfig.New(lpconfig.WithConfigKey(creds.AppKey, creds.AppSecret, creds.AccessToken))
	if err != nil {
		return nil, fmt.Errorf("longport config: %w", err)
	}
	qc, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, fmt.Errorf("longport quote context: %w", err)
	}
	return NewWithAPI(&quoteAPI{qc: qc}, candleCount), nil
}

// DefaultCandleCount covers roughly five US trading days of hourly bars.
const DefaultCandleCount = 35

// NewWithAPI wraps an existing API, mainly for tests.
func NewWithAPI(api API, candleCount int) *Client {
	if candleCount <= 0 {
		candleCount = DefaultCandleCount
	}
	return &Client{api: api, candleCount: candleCount}
}

var (
	_ drepo.QuoteProvider   = (*Client)(nil)
	_ drepo.HistoryProvider = (*Client)(nil)
)

// Quote returns static info with market cap computed as last done times total shares.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	sym := marketSymbol(symbol)
	infos, err := c.api.StaticInfo(ctx, []string{sym})
	if err != nil {
		return nil, fmt.Errorf("longport static info %s: %w", sym, err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, fmt.Errorf("longport static info %s: %w", sym, drepo.ErrNotFound)
	}
	info := infos[0]

	q := &models.Quote{
		Symbol:   symbol,
		Name:     info.NameEn,
		Currency: info.Currency,
		Exchange: info.Exchange,
	}

	last, err := c.api.LastDone(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("longport quote %s: %w", sym, err)
	}
	if last != nil {
		q.LastPrice = last
		q.MarketCap = last.Mul(decimal.NewFromInt(info.TotalShares))
	}
	return q, nil
}

// History returns the most recent hourly candles, oldest first.
func (c *Client) History(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	sym := marketSymbol(symbol)
	sticks, err := c.api.Candlesticks(ctx, sym, quote.PeriodSixtyMinute, int32(c.candleCount), quote.AdjustTypeNo)
	if err != nil {
		return nil, fmt.Errorf("longport candles %s: %w", sym, err)
	}

	bars := make([]models.PriceBar, 0, len(sticks))
	for _, s := range sticks {
		if s == nil {
			continue
		}
		bars = append(bars, models.PriceBar{
			Time:   time.Unix(s.Timestamp, 0).UTC(),
			Open:   deref(s.Open),
			High:   deref(s.High),
			Low:    deref(s.Low),
			Close:  deref(s.Close),
			Volume: s.Volume,
		})
	}
	return bars, nil
}

func (c *Client) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// marketSymbol adds the US market suffix to bare tickers.
func marketSymbol(symbol string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".US"
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// IsCredentialError reports whether err came from missing credentials.
func IsCredentialError(err error) bool {
	return errors.Is(err, drepo.ErrNoCredentials)
}
