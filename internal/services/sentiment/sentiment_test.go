package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockBoard/internal/domain/models"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/ProsusAI/finbert", r.URL.Path)
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Apple beats estimates", body["inputs"])

		_, _ = w.Write([]byte(`[[{"label":"positive","score":0.91},{"label":"neutral","score":0.06},{"label":"negative","score":0.03}]]`))
	}))
	defer srv.Close()

	hf := NewHuggingFace(srv.URL, "ProsusAI/finbert", "hf-test", time.Second)
	res, err := hf.Classify(context.Background(), "Apple beats estimates")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, res.Label)
	assert.InDelta(t, 0.91, res.Confidence, 1e-9)
	assert.Equal(t, "ProsusAI/finbert", res.Model)
}

func TestHuggingFaceFlatShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"Negative","score":0.8},{"label":"Neutral","score":0.2}]`))
	}))
	defer srv.Close()

	res, err := NewHuggingFace(srv.URL, "m", "", time.Second).Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, res.Label)
}

func TestHuggingFaceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	res, err := NewHuggingFace(srv.URL, "m", "", time.Second).Classify(context.Background(), "x")
	assert.Error(t, err)
	assert.Equal(t, models.NeutralSentiment(), res)
}

type fakeGenerator struct {
	reply string
	err   error
	in    []*schema.Message
}

func (f *fakeGenerator) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func TestLLMClassify(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"positive\": 2, \"negative\": 6, \"neutral\": 2}\n```"}
	l := NewLLMWithGenerator(gen, "gpt-4o-mini")

	res, err := l.Classify(context.Background(), "Shares plunge after guidance cut")
	require.NoError(t, err)
	require.Len(t, gen.in, 2)
	assert.Equal(t, schema.System, gen.in[0].Role)
	assert.Equal(t, "Shares plunge after guidance cut", gen.in[1].Content)
	assert.Equal(t, models.SentimentNegative, res.Label)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
	assert.InDelta(t, 1.0, res.Scores[models.SentimentPositive]+res.Scores[models.SentimentNegative]+res.Scores[models.SentimentNeutral], 1e-9)
}

func TestLLMClassifyFailures(t *testing.T) {
	_, err := NewLLMWithGenerator(&fakeGenerator{err: errors.New("quota")}, "m").Classify(context.Background(), "x")
	assert.Error(t, err)

	_, err = NewLLMWithGenerator(&fakeGenerator{reply: "I think it is good news"}, "m").Classify(context.Background(), "x")
	assert.Error(t, err)

	res, err := NewLLMWithGenerator(&fakeGenerator{reply: `{"positive":0,"negative":0}`}, "m").Classify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoScores)
	assert.Equal(t, models.SentimentNeutral, res.Label)
}

func TestFromScoresTieOrder(t *testing.T) {
	res, err := fromScores(map[string]float64{"neutral": 0.5, "positive": 0.5}, "")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, res.Label)
}
