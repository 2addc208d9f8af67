//go:build wireinject
// +build wireinject

package di

import (
	"StockBoard/internal/usecase"
	"StockBoard/pkg/config"
	applogger "StockBoard/pkg/logger"
	"StockBoard/pkg/server"

	"github.com/google/wire"
)

var dashboardSet = wire.NewSet(
	ProvideMetrics,
	ProvideCache,
	ProvideYahoo,
	ProvideMarketData,
	ProvideSearcher,
	ProvideClassifier,
	ProvideArticleExtractor,
	ProvideProviders,
	ProvideFetcher,
	ProvideDashboard,
)

// InitializeApp wires the HTTP and websocket server.
func InitializeApp(cfg *config.Config, l *applogger.Logger) (*server.App, func(), error) {
	wire.Build(
		dashboardSet,
		ProvideHandlers,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeDashboard wires the render pipeline alone, for CLI commands.
func InitializeDashboard(cfg *config.Config, l *applogger.Logger) (*usecase.DashboardUseCase, func(), error) {
	wire.Build(dashboardSet)
	return nil, nil, nil
}
