package models

import "strings"

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// ParseSentimentLabel maps a classifier label onto the three known labels.
// Anything unrecognised is neutral.
func ParseSentimentLabel(s string) SentimentLabel {
	switch SentimentLabel(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// SentimentResult is a classifier output. Confidence is the top label's probability.
type SentimentResult struct {
	Label      SentimentLabel             `json:"label"`
	Confidence float64                    `json:"confidence"`
	Scores     map[SentimentLabel]float64 `json:"scores,omitempty"`
	Model      string                     `json:"model,omitempty"`
}

// NeutralSentiment is the result used when classification is unavailable.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: SentimentNeutral, Confidence: 0}
}

type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
)
