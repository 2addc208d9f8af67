package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dashboard is the view model produced by one render.
type Dashboard struct {
	Query      string             `json:"query,omitempty"`
	Matches    []SearchMatch      `json:"matches,omitempty"`
	Options    []string           `json:"options,omitempty"`
	Selected   string             `json:"selected,omitempty"`
	Company    *CompanySection    `json:"company,omitempty"`
	Price      *PriceSection      `json:"price,omitempty"`
	Financials *FinancialsSection `json:"financials,omitempty"`
	Sentiment  *SentimentSection  `json:"sentiment,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	Notes      []string           `json:"notes,omitempty"`
	RenderedAt time.Time          `json:"rendered_at"`
}

type CompanySection struct {
	Symbol           string           `json:"symbol"`
	Name             string           `json:"name"`
	Currency         string           `json:"currency"`
	Exchange         string           `json:"exchange,omitempty"`
	MarketCapDisplay string           `json:"market_cap_display"`
	MarketCapRaw     string           `json:"market_cap_raw"`
	Caption          string           `json:"caption"`
	LastPrice        *decimal.Decimal `json:"last_price,omitempty"`
}

type PriceSection struct {
	Interval string     `json:"interval"`
	Bars     []PriceBar `json:"bars"`
}

type SeriesPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// BarSeries is one chart-ready metric. Column is the provider column it was read from.
type BarSeries struct {
	Metric string        `json:"metric"`
	Column string        `json:"column"`
	Points []SeriesPoint `json:"points"`
}

type FinancialsSection struct {
	Symbol    string     `json:"symbol"`
	Period    Period     `json:"period"`
	Revenue   *BarSeries `json:"revenue,omitempty"`
	NetIncome *BarSeries `json:"net_income,omitempty"`
	Columns   []string   `json:"columns,omitempty"`
}

type SentimentSection struct {
	Label          SentimentLabel             `json:"label"`
	Confidence     float64                    `json:"confidence"`
	Scores         map[SentimentLabel]float64 `json:"scores,omitempty"`
	Recommendation Recommendation             `json:"recommendation"`
	Disclaimer     string                     `json:"disclaimer"`
	Source         string                     `json:"source"`
	Characters     int                        `json:"characters"`
}
