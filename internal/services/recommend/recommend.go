// Package recommend maps a sentiment result to an advisory BUY/SELL/HOLD label.
package recommend

import (
	"strings"

	"StockBoard/internal/domain/models"
)

// DefaultThreshold is the minimum confidence for a directional call.
const DefaultThreshold = 0.60

type Rule struct {
	threshold float64
}

func New(threshold float64) *Rule {
	return &Rule{threshold: threshold}
}

// Recommend returns BUY for positive and SELL for negative text when the
// confidence reaches the threshold (inclusive). Everything else is HOLD.
func (r *Rule) Recommend(label string, confidence float64) models.Recommendation {
	if !(confidence >= r.threshold) {
		return models.RecommendHold
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case string(models.SentimentPositive):
		return models.RecommendBuy
	case string(models.SentimentNegative):
		return models.RecommendSell
	default:
		return models.RecommendHold
	}
}

// Threshold returns the configured confidence threshold.
func (r *Rule) Threshold() float64 { return r.threshold }

var std = New(DefaultThreshold)

// Recommend applies the rule with the default threshold.
func Recommend(label string, confidence float64) models.Recommendation {
	return std.Recommend(label, confidence)
}
