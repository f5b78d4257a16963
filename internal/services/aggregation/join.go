package aggregation

import "FundPulse/internal/domain/models"

// Join merges the three upstream collections into snapshots for perpetual contracts
// settled in quoteAsset. Symbols without a ticker are skipped; symbols without a funding
// record get a zero rate with FundingKnown=false. Snapshots whose volume or open price is
// not positive are dropped. Output order is not significant.
func Join(data models.MarketData, quoteAsset string) []models.SymbolSnapshot {
	tickers := make(map[string]models.TickerStat, len(data.Tickers))
	for _, t := range data.Tickers {
		tickers[t.Symbol] = t
	}
	funding := make(map[string]models.Number, len(data.Funding))
	for _, f := range data.Funding {
		funding[f.Symbol] = f.LastFundingRate
	}

	out := make([]models.SymbolSnapshot, 0, len(data.Instruments))
	seen := make(map[string]struct{}, len(data.Instruments))
	for _, inst := range data.Instruments {
		if inst.ContractType != models.ContractPerpetual || inst.QuoteAsset != quoteAsset {
			continue
		}
		if _, dup := seen[inst.Symbol]; dup {
			continue
		}
		seen[inst.Symbol] = struct{}{}

		t, ok := tickers[inst.Symbol]
		if !ok {
			continue
		}
		snap, ok := snapshotFrom(t, funding[inst.Symbol])
		if !ok {
			continue
		}
		out = append(out, snap)
	}
	return out
}

func snapshotFrom(t models.TickerStat, rate models.Number) (models.SymbolSnapshot, bool) {
	volume := t.QuoteVolume.Or(0)
	open := t.OpenPrice.Or(0)
	if volume <= 0 || open <= 0 {
		return models.SymbolSnapshot{}, false
	}
	last := t.LastPrice.Or(0)
	return models.SymbolSnapshot{
		Symbol:             t.Symbol,
		PriceChangePercent: t.PriceChangePercent.Or(0),
		FundingRate:        rate.Or(0),
		FundingKnown:       rate.IsPresent(),
		LastPrice:          last,
		Volume:             volume,
		OpenPrice:          open,
		HighPrice:          t.HighPrice.Or(0),
		LowPrice:           t.LowPrice.Or(0),
		ClosePrice:         last,
	}, true
}
