package aggregation

import (
	"time"

	"FundPulse/internal/domain/models"
)

// Summarize runs classification, dominance, ranking, signals and sentiment over one
// cycle's snapshots.
func Summarize(snaps []models.SymbolSnapshot, topN int, at time.Time) *models.MarketSummary {
	counts := Classify(snaps)
	return &models.MarketSummary{
		GeneratedAt:     at,
		SymbolCount:     len(snaps),
		Counts:          counts,
		Dominance:       Dominance(snaps),
		TopShortSqueeze: TopShortSqueeze(snaps, topN),
		TopLongTrap:     TopLongTrap(snaps, topN),
		Signals:         Signals(snaps),
		Sentiment:       SelectSentiment(counts),
	}
}
