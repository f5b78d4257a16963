package usecase

import (
	"context"
	"sync"

	"FundPulse/internal/domain/models"
)

type stubSource struct {
	instruments []models.InstrumentRef
	tickers     []models.TickerStat
	funding     []models.FundingRate
	err         error
}

func (s *stubSource) Instruments(context.Context) ([]models.InstrumentRef, error) {
	return s.instruments, nil
}

func (s *stubSource) Tickers(context.Context) ([]models.TickerStat, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tickers, nil
}

func (s *stubSource) FundingRates(context.Context) ([]models.FundingRate, error) {
	return s.funding, nil
}

type stubMetrics struct {
	mu      sync.Mutex
	cycles  map[string]int
	skipped int
	errors  map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{cycles: map[string]int{}, errors: map[string]int{}}
}

func (m *stubMetrics) RecordCycle(result string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[result]++
}

func (m *stubMetrics) RecordSkippedTick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped++
}

func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *stubMetrics) Skipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skipped
}

func (m *stubMetrics) RecordSnapshots(int) {}
func (m *stubMetrics) RecordSentiment(string) {}
func (m *stubMetrics) RecordCacheLookup(string, string) {}
func (m *stubMetrics) RecordLatency(string, float64) {}

type recordingPublisher struct {
	got []*models.MarketSummary
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, s *models.MarketSummary) error {
	p.got = append(p.got, s)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func perp(symbol string) models.InstrumentRef {
	return models.InstrumentRef{Symbol: symbol, ContractType: models.ContractPerpetual, QuoteAsset: "USDT"}
}

func stat(symbol string, pcp, open, last, high, low, volume float64) models.TickerStat {
	return models.TickerStat{
		Symbol:             symbol,
		PriceChangePercent: models.Present(pcp),
		LastPrice:          models.Present(last),
		OpenPrice:          models.Present(open),
		HighPrice:          models.Present(high),
		LowPrice:           models.Present(low),
		QuoteVolume:        models.Present(volume),
	}
}
