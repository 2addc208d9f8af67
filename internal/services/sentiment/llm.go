package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"StockBoard/internal/domain/models"
	dservice "StockBoard/internal/domain/service"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const systemPrompt = `You are a financial news sentiment classifier.
Reply with a single JSON object and nothing else, for example
{"positive": 0.7, "negative": 0.1, "neutral": 0.2}.
The three probabilities must sum to 1.`

// Generator is the chat model call the classifier needs.
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

type LLMConfig struct {
	Provider  string
	BaseURL   string
	Model     string
	MaxTokens int
	APIKey    string
}

// LLM classifies text by asking a chat model for label probabilities.
type LLM struct {
	gen   Generator
	model string
}

// NewLLM builds an openai or deepseek chat model.
func NewLLM(ctx context.Context, cfg LLMConfig) (*LLM, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case "deepseek":
		gen, err = deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		maxTokens := cfg.MaxTokens
		gen, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: &maxTokens,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("create %s chat model: %w", cfg.Provider, err)
	}
	return NewLLMWithGenerator(gen, cfg.Model), nil
}

func NewLLMWithGenerator(gen Generator, modelName string) *LLM {
	return &LLM{gen: gen, model: modelName}
}

var _ dservice.SentimentClassifier = (*LLM)(nil)

func (l *LLM) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	msg, err := l.gen.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(text),
	})
	if err != nil {
		return models.NeutralSentiment(), fmt.Errorf("llm classify: %w", err)
	}
	if msg == nil {
		return models.NeutralSentiment(), fmt.Errorf("llm classify: %w", ErrNoScores)
	}

	scores, err := parseScores(msg.Content)
	if err != nil {
		return models.NeutralSentiment(), fmt.Errorf("llm classify: %w", err)
	}
	return fromScores(scores, l.model)
}

// parseScores reads the first JSON object in content. Models sometimes wrap it in prose or fences.
func parseScores(content string) (map[string]float64, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply %q", content)
	}
	var scores map[string]float64
	if err := json.Unmarshal([]byte(content[start:end+1]), &scores); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	return scores, nil
}
