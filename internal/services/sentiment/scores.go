package sentiment

import (
	"errors"
	"math"

	"StockBoard/internal/domain/models"
)

var ErrNoScores = errors.New("classifier returned no scores")

// fromScores normalizes label probabilities and picks the top label.
// Ties resolve in the order positive, negative, neutral.
func fromScores(raw map[string]float64, model string) (models.SentimentResult, error) {
	scores := make(map[models.SentimentLabel]float64, 3)
	var total float64
	for k, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		l := models.ParseSentimentLabel(k)
		scores[l] += v
		total += v
	}
	if total == 0 {
		return models.NeutralSentiment(), ErrNoScores
	}

	res := models.SentimentResult{Label: models.SentimentNeutral, Scores: scores, Model: model}
	best := -1.0
	for _, l := range []models.SentimentLabel{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		s, ok := scores[l]
		if !ok {
			continue
		}
		s /= total
		scores[l] = s
		if s > best {
			best = s
			res.Label = l
		}
	}
	res.Confidence = best
	return res, nil
}
