package repository

import (
	"context"

	"FundPulse/internal/domain/models"
)

// MarketDataSource reads the three upstream collections of a cycle.
type MarketDataSource interface {
	Instruments(ctx context.Context) ([]models.InstrumentRef, error)
	Tickers(ctx context.Context) ([]models.TickerStat, error)
	FundingRates(ctx context.Context) ([]models.FundingRate, error)
}

// NewsSource searches the upstream news provider.
type NewsSource interface {
	Search(ctx context.Context, query, sort, pageSize string) ([]models.Article, error)
}

// SummaryPublisher fans a finished cycle out to downstream consumers.
type SummaryPublisher interface {
	Publish(ctx context.Context, s *models.MarketSummary) error
	Close() error
}

type Metrics interface {
	RecordCycle(result string, seconds float64)
	RecordSkippedTick()
	RecordSnapshots(n int)
	RecordSentiment(code string)
	RecordCacheLookup(cache, result string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
