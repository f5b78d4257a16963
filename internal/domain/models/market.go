package models

// Upstream collections. Field names follow the provider's JSON.

// InstrumentRef is static contract metadata.
type InstrumentRef struct {
	Symbol       string `json:"symbol"`
	ContractType string `json:"contractType"`
	QuoteAsset   string `json:"quoteAsset"`
}

// TickerStat holds 24h rolling statistics for one symbol.
type TickerStat struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent Number `json:"priceChangePercent"`
	LastPrice          Number `json:"lastPrice"`
	OpenPrice          Number `json:"openPrice"`
	HighPrice          Number `json:"highPrice"`
	LowPrice           Number `json:"lowPrice"`
	QuoteVolume        Number `json:"quoteVolume"`
}

// FundingRate is the current funding rate of one symbol.
type FundingRate struct {
	Symbol          string `json:"symbol"`
	LastFundingRate Number `json:"lastFundingRate"`
}

// ContractPerpetual is the contract type tracked by the join.
const ContractPerpetual = "PERPETUAL"

// MarketData is one cycle's raw input.
type MarketData struct {
	Instruments []InstrumentRef
	Tickers     []TickerStat
	Funding     []FundingRate
}

// SymbolSnapshot is one symbol's joined state for a single cycle.
// Volume and OpenPrice are always > 0.
type SymbolSnapshot struct {
	Symbol             string  `json:"symbol"`
	PriceChangePercent float64 `json:"priceChangePercent"`
	FundingRate        float64 `json:"fundingRate"`
	FundingKnown       bool    `json:"fundingKnown"`
	LastPrice          float64 `json:"lastPrice"`
	Volume             float64 `json:"volume"`
	OpenPrice          float64 `json:"openPrice"`
	HighPrice          float64 `json:"highPrice"`
	LowPrice           float64 `json:"lowPrice"`
	ClosePrice         float64 `json:"closePrice"`
}
