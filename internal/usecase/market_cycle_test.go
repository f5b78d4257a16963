package usecase

import (
	"context"
	"errors"
	"testing"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	"FundPulse/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btcEthSource() *stubSource {
	return &stubSource{
		instruments: []models.InstrumentRef{perp("BTCUSDT"), perp("ETHUSDT")},
		tickers: []models.TickerStat{
			stat("BTCUSDT", 2, 100, 102, 103, 99, 1000),
			stat("ETHUSDT", -3, 50, 48.5, 51, 48, 500),
		},
		funding: []models.FundingRate{
			{Symbol: "BTCUSDT", LastFundingRate: models.Present(-0.0001)},
			{Symbol: "ETHUSDT", LastFundingRate: models.Present(0.0002)},
		},
	}
}

func TestRunCyclePublishesSummary(t *testing.T) {
	state := NewSummaryState()
	pub := &recordingPublisher{}
	m := newStubMetrics()
	c := NewMarketCycle(btcEthSource(), state, []drepo.SummaryPublisher{pub}, m, logger.Nop(), "USDT", 5)

	s, err := c.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, s.SymbolCount)
	assert.Equal(t, 1, s.Counts.GreenNegFunding)
	assert.Equal(t, 1, s.Counts.RedPosFunding)
	require.Len(t, s.TopShortSqueeze, 1)
	assert.Equal(t, "BTCUSDT", s.TopShortSqueeze[0].Symbol)
	require.Len(t, s.TopLongTrap, 1)
	assert.Equal(t, "ETHUSDT", s.TopLongTrap[0].Symbol)

	latest, err := state.Latest()
	require.NoError(t, err)
	assert.Same(t, s, latest)
	require.Len(t, pub.got, 1)
	assert.Equal(t, 1, m.cycles["ok"])
}

func TestRunCycleFailureKeepsPreviousSummary(t *testing.T) {
	state := NewSummaryState()
	src := btcEthSource()
	m := newStubMetrics()
	c := NewMarketCycle(src, state, nil, m, logger.Nop(), "USDT", 5)

	first, err := c.RunCycle(context.Background())
	require.NoError(t, err)

	src.err = errors.New("connection reset")
	_, err = c.RunCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tickers")

	latest, err := state.Latest()
	require.NoError(t, err)
	assert.Same(t, first, latest)
	assert.Equal(t, 1, m.cycles["error"])
	assert.Equal(t, 1, m.errors["market_fetch"])
}

func TestRunCyclePublisherErrorDoesNotFailCycle(t *testing.T) {
	state := NewSummaryState()
	bad := &recordingPublisher{err: errors.New("broker down")}
	good := &recordingPublisher{}
	m := newStubMetrics()
	c := NewMarketCycle(btcEthSource(), state, []drepo.SummaryPublisher{bad, good}, m, logger.Nop(), "USDT", 5)

	_, err := c.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Len(t, good.got, 1)
	assert.Equal(t, 1, m.errors["publish"])
	assert.True(t, state.Ready())
}

func TestRunCycleEmptyMarket(t *testing.T) {
	state := NewSummaryState()
	c := NewMarketCycle(&stubSource{}, state, nil, newStubMetrics(), logger.Nop(), "USDT", 5)

	s, err := c.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.SymbolCount)
	assert.Equal(t, "neutral", s.Sentiment.Code)
	assert.Empty(t, s.Signals)
}

func TestSummaryStateSignals(t *testing.T) {
	state := NewSummaryState()
	_, err := state.Signals("")
	require.ErrorIs(t, err, ErrSummaryNotReady)

	c := NewMarketCycle(btcEthSource(), state, nil, newStubMetrics(), logger.Nop(), "USDT", 5)
	_, err = c.RunCycle(context.Background())
	require.NoError(t, err)

	all, err := state.Signals("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	long, err := state.Signals(models.DirectionLong)
	require.NoError(t, err)
	require.Len(t, long, 1)
	assert.Equal(t, "BTCUSDT", long[0].Symbol)
}
