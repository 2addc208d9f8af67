package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development staging production test"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"5s"`
		RateLimit       struct {
			Enabled      bool    `yaml:"enabled" default:"true"`
			Capacity     float64 `yaml:"capacity" default:"30" validate:"gt=0"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"1" validate:"gt=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Cache struct {
		MaxEntries      int           `yaml:"max_entries" default:"512" validate:"gte=1"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		DefaultTTL      time.Duration `yaml:"default_ttl" default:"5m"`
		TTL             struct {
			Quote      time.Duration `yaml:"quote" default:"5m"`
			History    time.Duration `yaml:"history" default:"5m"`
			Financials time.Duration `yaml:"financials" default:"6h"`
			Search     time.Duration `yaml:"search" default:"1h"`
			Sentiment  time.Duration `yaml:"sentiment" default:"1h"`
		} `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"stockboard"`
			Password string `yaml:"-"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Providers struct {
		Quotes string `yaml:"quotes" default:"auto" validate:"oneof=auto yahoo longport"`
		Yahoo  struct {
			BaseURL      string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
			SearchURL    string        `yaml:"search_url" default:"https://query2.finance.yahoo.com"`
			UserAgent    string        `yaml:"user_agent" default:"Mozilla/5.0"`
			Timeout      time.Duration `yaml:"timeout" default:"10s"`
			HistoryRange time.Duration `yaml:"history_range" default:"120h"`
		} `yaml:"yahoo"`
		Finnhub struct {
			BaseURL string `yaml:"base_url" default:"https://finnhub.io/api/v1"`
			APIKey  string `yaml:"-"`
		} `yaml:"finnhub"`
		Longport struct {
			CandleCount int    `yaml:"candle_count" default:"35" validate:"gte=1,lte=1000"`
			AppKey      string `yaml:"-"`
			AppSecret   string `yaml:"-"`
			AccessToken string `yaml:"-"`
		} `yaml:"longport"`
	} `yaml:"providers"`
	Search struct {
		Timeout    time.Duration `yaml:"timeout" default:"5s"`
		Limit      int           `yaml:"limit" default:"15" validate:"gte=1,lte=15"`
		TypeFilter string        `yaml:"type_filter" default:"Common Stock"`
	} `yaml:"search"`
	Sentiment struct {
		Backend     string `yaml:"backend" default:"auto" validate:"oneof=auto huggingface llm"`
		MaxChars    int    `yaml:"max_chars" default:"2000" validate:"gte=1"`
		HuggingFace struct {
			BaseURL string        `yaml:"base_url" default:"https://api-inference.huggingface.co"`
			Model   string        `yaml:"model" default:"ProsusAI/finbert"`
			Timeout time.Duration `yaml:"timeout" default:"20s"`
			Token   string        `yaml:"-"`
		} `yaml:"huggingface"`
		LLM struct {
			Provider  string `yaml:"provider" default:"openai" validate:"oneof=openai deepseek"`
			BaseURL   string `yaml:"base_url"`
			Model     string `yaml:"model" default:"gpt-4o-mini"`
			MaxTokens int    `yaml:"max_tokens" default:"200" validate:"gte=16"`
			APIKey    string `yaml:"-"`
		} `yaml:"llm"`
		Article struct {
			Timeout   time.Duration `yaml:"timeout" default:"10s"`
			UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; StockBoard/1.0)"`
		} `yaml:"article"`
	} `yaml:"sentiment"`
	Recommend struct {
		Threshold  float64 `yaml:"threshold" default:"0.6" validate:"gte=0,lte=1"`
		Disclaimer string  `yaml:"disclaimer" default:"Advisory only. Not financial advice."`
	} `yaml:"recommend"`
	Financials struct {
		Aliases struct {
			Revenue   []string `yaml:"revenue" default:"[\"Total Revenue\",\"TotalRevenue\",\"Revenue\"]" validate:"min=1"`
			NetIncome []string `yaml:"net_income" default:"[\"Net Income\",\"NetIncome\"]" validate:"min=1"`
		} `yaml:"aliases"`
	} `yaml:"financials"`
	Format struct {
		DefaultCurrency string `yaml:"default_currency" default:"USD" validate:"len=3"`
		// Opt-in placeholder rescaling, e.g. {VND: 25000, JPY: 150}.
		ApproxUSD map[string]float64 `yaml:"approx_usd"`
	} `yaml:"format"`
	UI struct {
		Selector string `yaml:"selector" default:"auto" validate:"oneof=auto survey plain"`
	} `yaml:"ui"`
}

var validate = validator.New()

// Load reads a YAML configuration file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func read(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML, then .env, then environment variables.
// Credentials are only ever read here.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := read(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("STOCKBOARD_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("SENTIMENT_BACKEND"); v != "" {
		c.Sentiment.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
		c.Cache.Redis.Enabled = true
	}

	c.Providers.Finnhub.APIKey = Secret("FINNHUB_API_KEY")
	c.Providers.Longport.AppKey = Secret("LONGPORT_APP_KEY")
	c.Providers.Longport.AppSecret = Secret("LONGPORT_APP_SECRET")
	c.Providers.Longport.AccessToken = Secret("LONGPORT_ACCESS_TOKEN")
	c.Sentiment.HuggingFace.Token = Secret("HF_API_TOKEN")
	c.Sentiment.LLM.APIKey = Secret("LLM_API_KEY")
	c.Cache.Redis.Password = Secret("REDIS_PASSWORD")

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Secret returns the value of the environment variable name, or the trimmed
// contents of the file named by name_FILE.
func Secret(name string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if path := os.Getenv(name + "_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Providers.Quotes == "longport" && !c.HasLongport() {
		return fmt.Errorf("providers.quotes is 'longport' but LONGPORT_* credentials are not set")
	}
	if c.Sentiment.Backend == "llm" && c.Sentiment.LLM.APIKey == "" {
		return fmt.Errorf("sentiment.backend is 'llm' but LLM_API_KEY is not set")
	}
	for cur, div := range c.Format.ApproxUSD {
		if div <= 0 {
			return fmt.Errorf("format.approx_usd[%s] must be positive", cur)
		}
	}
	return nil
}

// HasLongport reports whether all Longport credentials are present.
func (c *Config) HasLongport() bool {
	lp := c.Providers.Longport
	return lp.AppKey != "" && lp.AppSecret != "" && lp.AccessToken != ""
}

// SentimentBackend resolves "auto" to a concrete backend.
func (c *Config) SentimentBackend() string {
	if c.Sentiment.Backend != "auto" {
		return c.Sentiment.Backend
	}
	if c.Sentiment.LLM.APIKey != "" {
		return "llm"
	}
	return "huggingface"
}

// QuoteProvider resolves "auto" to a concrete quote provider.
func (c *Config) QuoteProvider() string {
	if c.Providers.Quotes != "auto" {
		return c.Providers.Quotes
	}
	if c.HasLongport() {
		return "longport"
	}
	return "yahoo"
}
