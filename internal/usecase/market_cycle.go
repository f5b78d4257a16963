package usecase

import (
	"context"
	"fmt"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	"FundPulse/internal/services/aggregation"
	"FundPulse/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// MarketCycle runs one fetch, join and summarize pass and publishes the result.
type MarketCycle struct {
	source     drepo.MarketDataSource
	state      *SummaryState
	publishers []drepo.SummaryPublisher
	metrics    drepo.Metrics
	log        *logger.Logger
	quoteAsset string
	topN       int
	now        func() time.Time
}

// NewMarketCycle creates a MarketCycle. Publishers may be empty.
func NewMarketCycle(
	source drepo.MarketDataSource,
	state *SummaryState,
	publishers []drepo.SummaryPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
	quoteAsset string,
	topN int,
) *MarketCycle {
	return &MarketCycle{
		source:     source,
		state:      state,
		publishers: publishers,
		metrics:    metrics,
		log:        log,
		quoteAsset: quoteAsset,
		topN:       topN,
		now:        time.Now,
	}
}

// Fetch pulls the three upstream collections concurrently and waits for all.
func (c *MarketCycle) Fetch(ctx context.Context) (models.MarketData, error) {
	var data models.MarketData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := c.source.Instruments(gctx)
		if err != nil {
			return fmt.Errorf("instruments: %w", err)
		}
		data.Instruments = v
		return nil
	})
	g.Go(func() error {
		v, err := c.source.Tickers(gctx)
		if err != nil {
			return fmt.Errorf("tickers: %w", err)
		}
		data.Tickers = v
		return nil
	})
	g.Go(func() error {
		v, err := c.source.FundingRates(gctx)
		if err != nil {
			return fmt.Errorf("funding rates: %w", err)
		}
		data.Funding = v
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.MarketData{}, err
	}
	return data, nil
}

// RunCycle executes one cycle. On a fetch failure nothing is published and
// the previous summary stays current.
func (c *MarketCycle) RunCycle(ctx context.Context) (*models.MarketSummary, error) {
	start := time.Now()

	data, err := c.Fetch(ctx)
	if err != nil {
		c.metrics.RecordCycle("error", time.Since(start).Seconds())
		c.metrics.RecordError("market_fetch")
		c.log.Error("market cycle failed", logger.Error(err), logger.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("fetch market data: %w", err)
	}

	snaps := aggregation.Join(data, c.quoteAsset)
	summary := aggregation.Summarize(snaps, c.topN, c.now().UTC())

	c.state.Store(summary)
	c.publish(ctx, summary)

	elapsed := time.Since(start)
	c.metrics.RecordCycle("ok", elapsed.Seconds())
	c.metrics.RecordSnapshots(summary.SymbolCount)
	c.metrics.RecordSentiment(summary.Sentiment.Code)
	c.log.Info("market cycle complete",
		logger.Int("instruments", len(data.Instruments)),
		logger.Int("symbols", summary.SymbolCount),
		logger.String("sentiment", summary.Sentiment.Code),
		logger.Duration("elapsed", elapsed),
	)
	return summary, nil
}

func (c *MarketCycle) publish(ctx context.Context, s *models.MarketSummary) {
	for _, p := range c.publishers {
		start := time.Now()
		if err := p.Publish(ctx, s); err != nil {
			c.metrics.RecordError("publish")
			c.log.Warn("summary publish failed", logger.Error(err))
			continue
		}
		c.metrics.RecordLatency("publish", time.Since(start).Seconds())
	}
}
