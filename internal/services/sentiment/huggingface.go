package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"StockBoard/internal/domain/models"
	dservice "StockBoard/internal/domain/service"
)

// HuggingFace calls the hosted inference API for a text-classification model.
type HuggingFace struct {
	*HTTPServiceBase
	model string
}

type hfLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func NewHuggingFace(baseURL, model, token string, timeout time.Duration) *HuggingFace {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &HuggingFace{
		HTTPServiceBase: NewHTTPServiceBase(baseURL, timeout, headers),
		model:           model,
	}
}

var _ dservice.SentimentClassifier = (*HuggingFace)(nil)

func (h *HuggingFace) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	var raw json.RawMessage
	payload := map[string]interface{}{
		"inputs":  text,
		"options": map[string]bool{"wait_for_model": true},
	}
	if err := h.PostJSON(ctx, "/models/"+pathEscapeModel(h.model), payload, &raw); err != nil {
		return models.NeutralSentiment(), fmt.Errorf("huggingface classify: %w", err)
	}

	labels, err := decodeLabels(raw)
	if err != nil {
		return models.NeutralSentiment(), fmt.Errorf("huggingface classify: %w", err)
	}
	scores := make(map[string]float64, len(labels))
	for _, l := range labels {
		scores[l.Label] += l.Score
	}
	return fromScores(scores, h.model)
}

// decodeLabels accepts both the nested [[...]] and flat [...] response shapes.
func decodeLabels(raw json.RawMessage) ([]hfLabel, error) {
	var nested [][]hfLabel
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrNoScores
		}
		return nested[0], nil
	}
	var flat []hfLabel
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return flat, nil
}

// pathEscapeModel keeps the org/model slash.
func pathEscapeModel(m string) string {
	u := url.URL{Path: m}
	return u.EscapedPath()
}
