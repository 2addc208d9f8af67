package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 5*time.Second, c.Search.Timeout)
	assert.Equal(t, 15, c.Search.Limit)
	assert.Equal(t, 2000, c.Sentiment.MaxChars)
	assert.InDelta(t, 0.6, c.Recommend.Threshold, 1e-9)
	assert.Equal(t, []string{"Total Revenue", "TotalRevenue", "Revenue"}, c.Financials.Aliases.Revenue)
	assert.Equal(t, []string{"Net Income", "NetIncome"}, c.Financials.Aliases.NetIncome)
	assert.Equal(t, "USD", c.Format.DefaultCurrency)
	assert.Empty(t, c.Format.ApproxUSD)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
environment: test
server:
  port: 9090
cache:
  ttl:
    quote: 30s
financials:
  aliases:
    revenue: ["Revenues"]
format:
  approx_usd:
    VND: 25000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Cache.TTL.Quote)
	assert.Equal(t, 6*time.Hour, c.Cache.TTL.Financials)
	assert.Equal(t, []string{"Revenues"}, c.Financials.Aliases.Revenue)
	assert.InDelta(t, 25000.0, c.Format.ApproxUSD["VND"], 1e-9)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recommend:\n  threshold: 1.5\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCredentialsIgnoredInYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "providers:\n  finnhub:\n    api_key: from-yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, c.Providers.Finnhub.APIKey)
}

func TestLoadWithEnvReadsSecrets(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "hf_token")
	require.NoError(t, os.WriteFile(secretPath, []byte("hf-secret\n"), 0o600))

	t.Setenv("FINNHUB_API_KEY", "fh-secret")
	t.Setenv("HF_API_TOKEN", "")
	t.Setenv("HF_API_TOKEN_FILE", secretPath)
	t.Setenv("PORT", "7070")

	c, err := LoadWithEnv(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "fh-secret", c.Providers.Finnhub.APIKey)
	assert.Equal(t, "hf-secret", c.Sentiment.HuggingFace.Token)
	assert.Equal(t, 7070, c.Server.Port)
}

func TestValidateLLMBackendNeedsKey(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	c.Sentiment.Backend = "llm"
	assert.Error(t, c.Validate())

	c.Sentiment.LLM.APIKey = "k"
	assert.NoError(t, c.Validate())
}

func TestBackendResolution(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "huggingface", c.SentimentBackend())
	assert.Equal(t, "yahoo", c.QuoteProvider())

	c.Sentiment.LLM.APIKey = "k"
	c.Providers.Longport.AppKey = "a"
	c.Providers.Longport.AppSecret = "b"
	c.Providers.Longport.AccessToken = "c"
	assert.Equal(t, "llm", c.SentimentBackend())
	assert.Equal(t, "longport", c.QuoteProvider())
}
