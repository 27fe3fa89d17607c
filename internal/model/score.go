package model

import "time"

// SubScores holds every component score in [0,1] before weighting.
type SubScores struct {
	Funding float64
	RSI     float64
	Volume  float64
	ADX     float64
	MA      float64
	VPVR    float64
}

// CoinScore is the full analysis result for one symbol in one refresh cycle.
// It is built fresh each cycle and never mutated afterwards, except for the
// timing adjustment the scorer applies before ranking.
type CoinScore struct {
	Symbol string
	Ticker Ticker

	RSI     float64
	ATR     float64
	ADX     ADXResult
	MA50    float64 // latest SMA(50) value, 0 if unavailable
	MA200   float64 // latest SMA(200) value, 0 if unavailable
	VWMA20  float64 // latest VWMA(20) value, 0 if unavailable
	SR      SupportResistance
	Stop    StopLossInfo
	Profile *VolumeProfile // nil when the profile could not be built

	HourlyFundingPct float64 // funding rate normalised to percent per hour
	Subs             SubScores
	BaseScore        float64 // weighted sum before timing, 0-100 scale
	TimingScore      float64 // market timing component in [0,1]
	FinalScore       float64 // clamped to [0,100]

	ComputedAt time.Time
}
