package model

import "time"

// TrendStrength classifies the ADX reading.
type TrendStrength string

const (
	TrendWeak     TrendStrength = "weak"
	TrendModerate TrendStrength = "moderate"
	TrendStrong   TrendStrength = "strong"
)

// TrendDirection classifies the +DI/-DI relationship.
type TrendDirection string

const (
	DirectionUp      TrendDirection = "up"
	DirectionDown    TrendDirection = "down"
	DirectionNeutral TrendDirection = "neutral"
)

// ADXResult holds the directional movement analysis for one symbol.
type ADXResult struct {
	ADX       float64
	PlusDI    float64
	MinusDI   float64
	Strength  TrendStrength
	Direction TrendDirection
}

// MAPoint is one entry of a moving-average series, aligned to a candle timestamp.
type MAPoint struct {
	Time  time.Time
	Value float64
}

// SupportResistance is a one-shot snapshot of key price levels over a lookback window.
type SupportResistance struct {
	Resistance         float64
	Support            float64
	Pivot              float64
	ResistanceStrength float64 // percentage of highs touching the resistance zone
	SupportStrength    float64 // percentage of lows touching the support zone
	CurrentPrice       float64
	ShortTermRes       float64
	ShortTermSup       float64
}

// PositionSide selects which direction StopLoss plans for.
type PositionSide string

const (
	SideShort PositionSide = "short"
	SideLong  PositionSide = "long"
)

// StopLossInfo is the stop/target plan derived from levels and ATR.
type StopLossInfo struct {
	StopLoss        float64
	TargetPrice     float64
	RiskRewardRatio float64 // 0 means no valid setup
	RiskPercent     float64
	RewardPercent   float64
}

// VolumeProfile holds the point of control and value area of a volume profile.
type VolumeProfile struct {
	POC           float64
	ValueAreaHigh float64
	ValueAreaLow  float64
	TotalVolume   float64
}
