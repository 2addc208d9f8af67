package service

import (
	"context"

	"StockBoard/internal/domain/models"
)

// SentimentClassifier scores financial text as positive, negative or neutral.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, error)
}

// ArticleExtractor fetches a news page and returns its readable text.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}
