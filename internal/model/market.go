package model

import "time"

// Candle represents a single OHLCV bar.
type Candle struct {
	OpenTime  time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime time.Time
}

// Ticker holds the 24h market snapshot for one perpetual symbol.
type Ticker struct {
	Symbol         string
	LastPrice      float64
	QuoteVolume24h float64
	PriceChangePct float64 // 24h change, percent
}

// FundingInfo holds the current funding state for a perpetual symbol.
// IntervalHours is 0 when the exchange did not report the funding cycle;
// the cycle is then inferred from NextFundingTime.
type FundingInfo struct {
	Symbol          string
	Rate            float64 // per funding period, as a fraction (0.0001 = 0.01%)
	NextFundingTime time.Time
	IntervalHours   int
}
