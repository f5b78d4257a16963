//go:build wireinject
// +build wireinject

package di

import (
	"FundPulse/internal/usecase"
	"FundPulse/pkg/config"
	"FundPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Upstream clients and infrastructure
		ProvideMarketSource,
		ProvideNewsSource,
		ProvideRedisCache,
		ProvideNewsCache,
		ProvideSummaryPublishers,

		// Use cases
		usecase.NewSummaryState,
		ProvideMarketCycle,
		ProvideScheduler,
		usecase.NewNewsSearch,

		// HTTP
		ProvideRateLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideClosers,
		ProvideApp,
	)
	return nil, nil, nil
}
