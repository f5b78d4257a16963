package aggregation

import "FundPulse/internal/domain/models"

// Sentiment codes.
const (
	SentimentBearishTrap      = "bearish_trap"
	SentimentBullishSqueeze   = "bullish_squeeze"
	SentimentBullishMomentum  = "bullish_momentum"
	SentimentBearishBreakdown = "bearish_breakdown"
	SentimentMixed            = "mixed_signals"
	SentimentNeutral          = "neutral"
)

var (
	neutral = models.Sentiment{Code: SentimentNeutral, Headline: "No dominant positioning; market is neutral"}

	// Evaluated top to bottom; the first match wins.
	sentimentRules = []struct {
		label models.Sentiment
		match func(c models.ClassificationCounts, greenRatio, redRatio float64) bool
	}{
		{
			label: models.Sentiment{Code: SentimentBearishTrap, Headline: "Falling markets still funded long: long-trap risk is high"},
			match: func(c models.ClassificationCounts, _, _ float64) bool { return c.RedPosFunding >= 30 },
		},
		{
			label: models.Sentiment{Code: SentimentBullishSqueeze, Headline: "Rising markets with shorts paying: short squeeze building"},
			match: func(c models.ClassificationCounts, _, _ float64) bool { return c.GreenNegFunding >= 20 },
		},
		{
			label: models.Sentiment{Code: SentimentBullishMomentum, Headline: "Broad advance backed by negative funding: bullish momentum"},
			match: func(c models.ClassificationCounts, g, _ float64) bool { return g > 0.7 && c.GreenNegFunding >= 10 },
		},
		{
			label: models.Sentiment{Code: SentimentBearishBreakdown, Headline: "Broad decline with longs still paying: bearish breakdown"},
			match: func(c models.ClassificationCounts, _, r float64) bool { return r > 0.65 && c.RedPosFunding >= 20 },
		},
		{
			label: models.Sentiment{Code: SentimentMixed, Headline: "Squeeze and trap setups on both sides: mixed signals"},
			match: func(c models.ClassificationCounts, _, _ float64) bool { return c.GreenNegFunding > 5 && c.RedPosFunding > 5 },
		},
	}
)

// SelectSentiment picks the narrative for a cycle's counts.
func SelectSentiment(c models.ClassificationCounts) models.Sentiment {
	total := c.Green + c.Red
	if total == 0 {
		return neutral
	}
	greenRatio := float64(c.Green) / float64(total)
	redRatio := float64(c.Red) / float64(total)
	for _, r := range sentimentRules {
		if r.match(c, greenRatio, redRatio) {
			return r.label
		}
	}
	return neutral
}
