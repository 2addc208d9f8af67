package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the company metadata shown in the header of a dashboard.
type Quote struct {
	Symbol    string           `json:"symbol"`
	Name      string           `json:"name"`
	Currency  string           `json:"currency"`
	MarketCap decimal.Decimal  `json:"market_cap"`
	LastPrice *decimal.Decimal `json:"last_price,omitempty"`
	Exchange  string           `json:"exchange,omitempty"`
}

// PriceBar is one OHLCV candle.
type PriceBar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// SearchMatch is one symbol lookup result.
type SearchMatch struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Exchange    string `json:"exchange,omitempty"`
}
