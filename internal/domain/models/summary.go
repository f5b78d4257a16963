package models

import "time"

// ClassificationCounts tallies snapshots by price and funding sign.
type ClassificationCounts struct {
	Total           int `json:"total"`
	Green           int `json:"green"`
	Red             int `json:"red"`
	GreenPosFunding int `json:"greenPosFunding"`
	GreenNegFunding int `json:"greenNegFunding"`
	RedPosFunding   int `json:"redPosFunding"`
	RedNegFunding   int `json:"redNegFunding"`
}

// DominanceLabel names the side that carries the larger share.
type DominanceLabel string

const (
	DominanceBullish  DominanceLabel = "bullish"
	DominanceBearish  DominanceLabel = "bearish"
	DominanceBalanced DominanceLabel = "balanced"
)

// SideSplit compares a weighted quantity between the bullish (green) and bearish (red) side.
type SideSplit struct {
	Bullish        float64        `json:"bullish"`
	Bearish        float64        `json:"bearish"`
	BullishPercent float64        `json:"bullishPercent"`
	BearishPercent float64        `json:"bearishPercent"`
	Label          DominanceLabel `json:"label"`
}

// DominanceSummary groups the three dominance views of a cycle.
type DominanceSummary struct {
	Liquidity   SideSplit `json:"liquidity"`
	Transaction SideSplit `json:"transaction"`
	Amplitude   SideSplit `json:"amplitude"`
}

// Direction of a trade signal.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
	DirectionNone  Direction = "none"
)

// TradeSignal is derived from exactly one snapshot. Levels are nil when Direction is none.
type TradeSignal struct {
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	Entry      *float64  `json:"entry"`
	StopLoss   *float64  `json:"stopLoss"`
	TakeProfit *float64  `json:"takeProfit"`
}

// Sentiment is the market-wide conclusion of a cycle.
type Sentiment struct {
	Code     string `json:"code"`
	Headline string `json:"headline"`
}

// MarketSummary is the read-only result published once per cycle.
type MarketSummary struct {
	GeneratedAt     time.Time            `json:"generatedAt"`
	SymbolCount     int                  `json:"symbolCount"`
	Counts          ClassificationCounts `json:"classificationCounts"`
	Dominance       DominanceSummary     `json:"dominanceSummary"`
	TopShortSqueeze []SymbolSnapshot     `json:"topShortSqueeze"`
	TopLongTrap     []SymbolSnapshot     `json:"topLongTrap"`
	Signals         []TradeSignal        `json:"tradeSignals"`
	Sentiment       Sentiment            `json:"sentiment"`
}
