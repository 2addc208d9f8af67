package di

import (
	"context"
	"fmt"

	"StockBoard/internal/domain/repository"
	"StockBoard/internal/domain/service"
	"StockBoard/internal/handler/api"
	"StockBoard/internal/handler/ws"
	"StockBoard/internal/service/finnhub"
	"StockBoard/internal/service/ratelimit"
	"StockBoard/internal/services/article"
	"StockBoard/internal/services/financials"
	"StockBoard/internal/services/format"
	"StockBoard/internal/services/longport"
	"StockBoard/internal/services/recommend"
	"StockBoard/internal/services/sentiment"
	"StockBoard/internal/services/yahoo"
	"StockBoard/internal/usecase"
	"StockBoard/pkg/cache"
	"StockBoard/pkg/config"
	xhttp "StockBoard/pkg/http"
	"StockBoard/pkg/http/middleware"
	applogger "StockBoard/pkg/logger"
	"StockBoard/pkg/metrics"
	"StockBoard/pkg/server"
)

// MarketData groups the quote and candle source chosen at startup.
type MarketData struct {
	Quotes   repository.QuoteProvider
	History  repository.HistoryProvider
	Interval string
}

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus recorder, or a no-op one when disabled.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New(nil)
}

// ProvideCache creates the memo cache. With Redis enabled the memory cache
// becomes L1 in front of it; an unreachable Redis falls back to memory only.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, func(), error) {
	memOpts := []cache.MemoryOption{
		cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		cache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
		cache.WithMemoryDefaultTTL(cfg.Cache.DefaultTTL),
	}

	var svc cache.Service
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			l.Warn("redis unavailable, using memory cache only", applogger.Error(err))
		} else {
			svc = cache.NewLayeredCache(rc,
				cache.WithLayeredMemory(memOpts...),
				cache.WithLayeredBackfillTTL(cfg.Cache.DefaultTTL),
			)
			l.Info("cache: memory + redis", applogger.String("host", cfg.Cache.Redis.Host))
		}
	}
	if svc == nil {
		svc = cache.NewMemoryCache(memOpts...)
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			l.Warn("cache close error", applogger.Error(err))
		}
	}
	return svc, cleanup, nil
}

// ProvideYahoo creates the Yahoo client used for statements and, by default,
// quotes, candles and search.
func ProvideYahoo(cfg *config.Config) *yahoo.Client {
	y := cfg.Providers.Yahoo
	return yahoo.New(yahoo.Options{
		BaseURL:      y.BaseURL,
		SearchURL:    y.SearchURL,
		UserAgent:    y.UserAgent,
		Timeout:      y.Timeout,
		HistoryRange: y.HistoryRange,
	})
}

// ProvideMarketData picks Longport when its credentials are configured and Yahoo otherwise.
func ProvideMarketData(cfg *config.Config, y *yahoo.Client, l *applogger.Logger) (MarketData, func(), error) {
	if cfg.QuoteProvider() != "longport" {
		l.Info("quotes: yahoo")
		return MarketData{Quotes: y, History: y, Interval: "1h"}, func() {}, nil
	}

	lp := cfg.Providers.Longport
	client, err := longport.New(longport.Credentials{
		AppKey:      lp.AppKey,
		AppSecret:   lp.AppSecret,
		AccessToken: lp.AccessToken,
	}, lp.CandleCount)
	if longport.IsCredentialError(err) {
		l.Warn("longport credentials incomplete, quotes: yahoo")
		return MarketData{Quotes: y, History: y, Interval: "1h"}, func() {}, nil
	}
	if err != nil {
		return MarketData{}, nil, err
	}
	l.Info("quotes: longport")
	cleanup := func() {
		if err := client.Close(); err != nil {
			l.Warn("longport close error", applogger.Error(err))
		}
	}
	return MarketData{Quotes: client, History: client, Interval: "1h"}, cleanup, nil
}

// ProvideSearcher uses Finnhub when a token is set and Yahoo search otherwise.
func ProvideSearcher(cfg *config.Config, y *yahoo.Client, l *applogger.Logger) repository.SymbolSearcher {
	if cfg.Providers.Finnhub.APIKey == "" {
		l.Info("search: yahoo")
		return y
	}
	l.Info("search: finnhub")
	return finnhub.New(cfg.Providers.Finnhub.BaseURL, cfg.Providers.Finnhub.APIKey, cfg.Search.Timeout)
}

// ProvideClassifier creates the sentiment backend resolved from config.
func ProvideClassifier(cfg *config.Config, l *applogger.Logger) (service.SentimentClassifier, error) {
	s := cfg.Sentiment
	switch cfg.SentimentBackend() {
	case "llm":
		c, err := sentiment.NewLLM(context.Background(), sentiment.LLMConfig{
			Provider:  s.LLM.Provider,
			BaseURL:   s.LLM.BaseURL,
			Model:     s.LLM.Model,
			MaxTokens: s.LLM.MaxTokens,
			APIKey:    s.LLM.APIKey,
		})
		if err != nil {
			return nil, err
		}
		l.Info("sentiment: llm", applogger.String("provider", s.LLM.Provider), applogger.String("model", s.LLM.Model))
		return c, nil
	default:
		l.Info("sentiment: huggingface", applogger.String("model", s.HuggingFace.Model))
		return sentiment.NewHuggingFace(s.HuggingFace.BaseURL, s.HuggingFace.Model, s.HuggingFace.Token, s.HuggingFace.Timeout), nil
	}
}

// ProvideArticleExtractor creates the news page reader.
func ProvideArticleExtractor(cfg *config.Config) service.ArticleExtractor {
	return article.New(cfg.Sentiment.Article.UserAgent, cfg.Sentiment.Article.Timeout)
}

// ProvideProviders collects the selected providers for the fetcher.
func ProvideProviders(md MarketData, y *yahoo.Client, s repository.SymbolSearcher, c service.SentimentClassifier) usecase.Providers {
	return usecase.Providers{
		Quotes:     md.Quotes,
		History:    md.History,
		Financials: y,
		Searcher:   s,
		Classifier: c,
	}
}

// ProvideFetcher creates the fail-soft fetch layer.
func ProvideFetcher(p usecase.Providers, c cache.Service, cfg *config.Config, m repository.Metrics, l *applogger.Logger) *usecase.Fetcher {
	ttl := cfg.Cache.TTL
	return usecase.NewFetcher(p, c, usecase.FetcherConfig{
		QuoteTTL:      ttl.Quote,
		HistoryTTL:    ttl.History,
		FinancialsTTL: ttl.Financials,
		SearchTTL:     ttl.Search,
		SentimentTTL:  ttl.Sentiment,
		SearchTimeout: cfg.Search.Timeout,
		SearchLimit:   cfg.Search.Limit,
		TypeFilter:    cfg.Search.TypeFilter,
		MaxChars:      cfg.Sentiment.MaxChars,
	}, m, l)
}

// ProvideDashboard creates the render pipeline.
func ProvideDashboard(
	f *usecase.Fetcher,
	md MarketData,
	ex service.ArticleExtractor,
	cfg *config.Config,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.DashboardUseCase {
	aliases := cfg.Financials.Aliases
	return usecase.NewDashboardUseCase(
		f,
		financials.NewResolver(aliases.Revenue, aliases.NetIncome),
		format.New(
			format.WithDefaultCurrency(cfg.Format.DefaultCurrency),
			format.WithApproxUSD(cfg.Format.ApproxUSD),
		),
		recommend.New(cfg.Recommend.Threshold),
		usecase.WithArticleExtractor(ex),
		usecase.WithDisclaimer(cfg.Recommend.Disclaimer),
		usecase.WithPriceInterval(md.Interval),
		usecase.WithDashboardMetrics(m),
		usecase.WithDashboardLogger(l),
	)
}

// ProvideHandlers registers the JSON API and the websocket session endpoint.
func ProvideHandlers(l *applogger.Logger, uc *usecase.DashboardUseCase) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewDashboardEchoHandler(l, uc),
		ws.NewSessionHandler(l, uc),
	}
}

// ProvideHTTPServer creates the echo server with rate limiting on the API routes.
func ProvideHTTPServer(cfg *config.Config, l *applogger.Logger, handlers []xhttp.Handler) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithAddr(cfg.Server.Host, cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowRequest(cfg.Server.SlowRequest),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	if rl := cfg.Server.RateLimit; rl.Enabled {
		limiter := ratelimit.New(rl.Capacity, rl.RefillPerSec)
		opts = append(opts, xhttp.WithMiddleware(middleware.RateLimit(limiter, "/healthz", cfg.Metrics.Path, "/ws")))
	}
	return xhttp.NewServer(l, handlers, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, l, srv)
}
