package aggregation

import "FundPulse/internal/domain/models"

// IsGreen reports whether a snapshot counts as rising. Zero change is green.
func IsGreen(s models.SymbolSnapshot) bool { return s.PriceChangePercent >= 0 }

// IsPositiveFunding reports whether longs pay shorts. Zero funding is positive.
func IsPositiveFunding(s models.SymbolSnapshot) bool { return s.FundingRate >= 0 }

// Classify partitions snapshots into the four price/funding buckets.
func Classify(snaps []models.SymbolSnapshot) models.ClassificationCounts {
	c := models.ClassificationCounts{Total: len(snaps)}
	for _, s := range snaps {
		switch {
		case IsGreen(s) && IsPositiveFunding(s):
			c.Green++
			c.GreenPosFunding++
		case IsGreen(s):
			c.Green++
			c.GreenNegFunding++
		case IsPositiveFunding(s):
			c.Red++
			c.RedPosFunding++
		default:
			c.Red++
			c.RedNegFunding++
		}
	}
	return c
}
