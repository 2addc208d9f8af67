// Package format renders monetary magnitudes for display.
package format

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const approxLabel = "USD (approx)"

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

// Formatter turns raw market-cap values into "<CUR> <number>" strings.
type Formatter struct {
	defaultCurrency string
	approx          map[string]decimal.Decimal
}

type Option func(*Formatter)

// WithDefaultCurrency sets the label used when no currency is given.
func WithDefaultCurrency(cur string) Option {
	return func(f *Formatter) {
		if cur = strings.TrimSpace(cur); cur != "" {
			f.defaultCurrency = cur
		}
	}
}

// WithApproxUSD divides values in the listed currencies and labels them
// "USD (approx)". The divisors are fixed placeholders, not exchange rates.
func WithApproxUSD(divisors map[string]float64) Option {
	return func(f *Formatter) {
		for cur, d := range divisors {
			if d > 0 {
				f.approx[strings.ToUpper(cur)] = decimal.NewFromFloat(d)
			}
		}
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{
		defaultCurrency: "USD",
		approx:          make(map[string]decimal.Decimal),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var std = New()

// FormatMarketCap formats with the default formatter.
func FormatMarketCap(value any, currency string) string {
	return std.MarketCap(value, currency)
}

// MarketCap formats value with a T/B/M suffix and two decimals, or as a
// comma-grouped integer below one million. Values that are not numeric
// render as zero in the default currency.
func (f *Formatter) MarketCap(value any, currency string) string {
	v, ok := toDecimal(value)
	if !ok {
		return f.defaultCurrency + " 0"
	}

	cur := strings.TrimSpace(currency)
	if cur == "" {
		cur = f.defaultCurrency
	}
	if div, ok := f.approx[strings.ToUpper(cur)]; ok {
		v = v.Div(div)
		cur = approxLabel
	}

	switch {
	case v.GreaterThanOrEqual(trillion):
		return cur + " " + v.Div(trillion).StringFixed(2) + "T"
	case v.GreaterThanOrEqual(billion):
		return cur + " " + v.Div(billion).StringFixed(2) + "B"
	case v.GreaterThanOrEqual(million):
		return cur + " " + v.Div(million).StringFixed(2) + "M"
	default:
		return cur + " " + commaInt(v)
	}
}

// Raw renders value as a comma-grouped integer, "0" when not numeric.
func (f *Formatter) Raw(value any) string {
	v, ok := toDecimal(value)
	if !ok {
		return "0"
	}
	return commaInt(v)
}

func commaInt(v decimal.Decimal) string {
	return humanize.BigComma(v.RoundBank(0).BigInt())
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint(uint64(v)), true
	case uint8:
		return fromUint(uint64(v)), true
	case uint16:
		return fromUint(uint64(v)), true
	case uint32:
		return fromUint(uint64(v)), true
	case uint64:
		return fromUint(v), true
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		return fromString(string(v))
	case string:
		return fromString(v)
	default:
		return decimal.Zero, false
	}
}

func fromUint(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromString(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
