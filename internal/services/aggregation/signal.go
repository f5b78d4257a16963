package aggregation

import "FundPulse/internal/domain/models"

// Fixed risk levels relative to the entry price.
const (
	LongStopFactor   = 0.99
	LongTargetFactor = 1.02

	ShortStopFactor   = 1.01
	ShortTargetFactor = 0.98
)

// Signal derives the trade signal of one snapshot.
func Signal(s models.SymbolSnapshot) models.TradeSignal {
	switch {
	case s.PriceChangePercent >= 0 && s.FundingRate < 0:
		return levels(s, models.DirectionLong, LongStopFactor, LongTargetFactor)
	case s.PriceChangePercent < 0 && s.FundingRate > 0:
		return levels(s, models.DirectionShort, ShortStopFactor, ShortTargetFactor)
	default:
		return models.TradeSignal{Symbol: s.Symbol, Direction: models.DirectionNone}
	}
}

// Signals derives one signal per snapshot, in input order.
func Signals(snaps []models.SymbolSnapshot) []models.TradeSignal {
	out := make([]models.TradeSignal, len(snaps))
	for i, s := range snaps {
		out[i] = Signal(s)
	}
	return out
}

func levels(s models.SymbolSnapshot, dir models.Direction, stop, target float64) models.TradeSignal {
	entry := s.LastPrice
	sl := entry * stop
	tp := entry * target
	return models.TradeSignal{
		Symbol:     s.Symbol,
		Direction:  dir,
		Entry:      &entry,
		StopLoss:   &sl,
		TakeProfit: &tp,
	}
}
