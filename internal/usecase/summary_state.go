package usecase

import (
	"errors"
	"sync/atomic"

	"FundPulse/internal/domain/models"
)

// ErrSummaryNotReady is returned until the first cycle has published.
var ErrSummaryNotReady = errors.New("market summary not ready")

// SummaryState holds the latest published summary. Readers never see a
// partially built summary: the pointer is swapped whole.
type SummaryState struct {
	p atomic.Pointer[models.MarketSummary]
}

func NewSummaryState() *SummaryState { return &SummaryState{} }

func (s *SummaryState) Store(m *models.MarketSummary) {
	if m != nil {
		s.p.Store(m)
	}
}

// Latest returns the most recent summary or ErrSummaryNotReady.
func (s *SummaryState) Latest() (*models.MarketSummary, error) {
	m := s.p.Load()
	if m == nil {
		return nil, ErrSummaryNotReady
	}
	return m, nil
}

func (s *SummaryState) Ready() bool { return s.p.Load() != nil }

// Signals returns the latest trade signals, optionally filtered by direction.
// An empty direction returns every signal.
func (s *SummaryState) Signals(direction models.Direction) ([]models.TradeSignal, error) {
	m, err := s.Latest()
	if err != nil {
		return nil, err
	}
	if direction == "" {
		return m.Signals, nil
	}
	out := make([]models.TradeSignal, 0, len(m.Signals))
	for _, sig := range m.Signals {
		if sig.Direction == direction {
			out = append(out, sig)
		}
	}
	return out, nil
}
