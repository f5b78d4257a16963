package aggregation

import (
	"sort"

	"FundPulse/internal/domain/models"
)

// DefaultTopN is the size of each divergence ranking.
const DefaultTopN = 5

// VolumeFunc extracts the volume a dominance view weighs a snapshot by.
type VolumeFunc func(models.SymbolSnapshot) float64

// Liquidity weighs by traded quote volume.
func Liquidity(s models.SymbolSnapshot) float64 { return s.Volume }

// TransactionVolume weighs by executed volume. The ticker feed only carries quote
// volume, so this reads the same field as Liquidity.
func TransactionVolume(s models.SymbolSnapshot) float64 { return s.Volume }

// VolumeDominance sums volume over green and red snapshots.
func VolumeDominance(snaps []models.SymbolSnapshot, volume VolumeFunc) models.SideSplit {
	var green, red float64
	for _, s := range snaps {
		if IsGreen(s) {
			green += volume(s)
		} else {
			red += volume(s)
		}
	}
	return split(green, red)
}

// Amplitude returns the high-low range as a percentage of the open.
func Amplitude(s models.SymbolSnapshot) float64 {
	if s.OpenPrice <= 0 {
		return 0
	}
	return (s.HighPrice - s.LowPrice) / s.OpenPrice * 100
}

// AmplitudeDominance weighs each snapshot's amplitude by volume and assigns it to the
// bullish side when it closed above the open, bearish when below. Flat candles join
// neither side but still count toward the combined total the shares are taken of.
func AmplitudeDominance(snaps []models.SymbolSnapshot) models.SideSplit {
	var bullish, bearish, total float64
	for _, s := range snaps {
		weighted := Amplitude(s) * s.Volume
		total += weighted
		switch {
		case s.ClosePrice > s.OpenPrice:
			bullish += weighted
		case s.ClosePrice < s.OpenPrice:
			bearish += weighted
		}
	}
	return splitOf(bullish, bearish, total)
}

// Dominance computes all three dominance views.
func Dominance(snaps []models.SymbolSnapshot) models.DominanceSummary {
	return models.DominanceSummary{
		Liquidity:   VolumeDominance(snaps, Liquidity),
		Transaction: VolumeDominance(snaps, TransactionVolume),
		Amplitude:   AmplitudeDominance(snaps),
	}
}

func split(bullish, bearish float64) models.SideSplit {
	return splitOf(bullish, bearish, bullish+bearish)
}

// splitOf reports both sides as shares of total, which may exceed bullish+bearish.
func splitOf(bullish, bearish, total float64) models.SideSplit {
	out := models.SideSplit{Bullish: bullish, Bearish: bearish, Label: models.DominanceBalanced}
	if total > 0 {
		out.BullishPercent = bullish / total * 100
		out.BearishPercent = bearish / total * 100
	}
	switch {
	case bullish > bearish:
		out.Label = models.DominanceBullish
	case bearish > bullish:
		out.Label = models.DominanceBearish
	}
	return out
}

// TopShortSqueeze returns rising symbols with negative funding, most negative first.
func TopShortSqueeze(snaps []models.SymbolSnapshot, n int) []models.SymbolSnapshot {
	return rank(snaps, n,
		func(s models.SymbolSnapshot) bool { return s.PriceChangePercent > 0 && s.FundingRate < 0 },
		func(a, b models.SymbolSnapshot) bool { return a.FundingRate < b.FundingRate },
	)
}

// TopLongTrap returns falling symbols with positive funding, most positive first.
func TopLongTrap(snaps []models.SymbolSnapshot, n int) []models.SymbolSnapshot {
	return rank(snaps, n,
		func(s models.SymbolSnapshot) bool { return s.PriceChangePercent < 0 && s.FundingRate > 0 },
		func(a, b models.SymbolSnapshot) bool { return a.FundingRate > b.FundingRate },
	)
}

func rank(snaps []models.SymbolSnapshot, n int, keep func(models.SymbolSnapshot) bool, less func(a, b models.SymbolSnapshot) bool) []models.SymbolSnapshot {
	if n <= 0 {
		n = DefaultTopN
	}
	out := make([]models.SymbolSnapshot, 0, n)
	for _, s := range snaps {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
