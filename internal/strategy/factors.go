package strategy

import "ShortSentinel/internal/model"

// Weights is the scoring weight scheme. The six base weights plus Timing
// should total 1.0; Validate in the config package enforces that. They are
// configuration, not literals, so the scheme can be tuned without a rebuild.
type Weights struct {
	VPVR    float64 `yaml:"vpvr"`
	ADX     float64 `yaml:"adx"`
	RSI     float64 `yaml:"rsi"`
	Funding float64 `yaml:"funding"`
	MA      float64 `yaml:"ma"`
	Volume  float64 `yaml:"volume"`
	Timing  float64 `yaml:"timing"`
}

// Params bundles every tunable constant of the scorer.
type Params struct {
	Weights Weights `yaml:"weights"`

	// FundingSaturationPct is the hourly funding rate (percent per hour)
	// at which the funding score saturates at 0 or 1.
	FundingSaturationPct float64 `yaml:"funding_saturation_pct"`

	// RSIFloor/RSICeil bound the linear RSI mapping.
	RSIFloor float64 `yaml:"rsi_floor"`
	RSICeil  float64 `yaml:"rsi_ceil"`

	// VolumeSaturation is the 24h quote volume at which the volume score
	// reaches 1.
	VolumeSaturation float64 `yaml:"volume_saturation"`
}

// DefaultParams returns the hand-tuned scheme the dashboard ships with.
func DefaultParams() Params {
	return Params{
		Weights: Weights{
			VPVR:    0.11,
			ADX:     0.15,
			RSI:     0.15,
			Funding: 0.14,
			MA:      0.15,
			Volume:  0.05,
			Timing:  0.25,
		},
		FundingSaturationPct: 0.15,
		RSIFloor:             25,
		RSICeil:              75,
		VolumeSaturation:     10_000_000_000,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scoreFunding maps the hourly funding rate linearly onto [0,1] with a
// saturation band at +/-FundingSaturationPct per hour. Positive funding
// means longs pay shorts, so it scores high for the short side.
func (p Params) scoreFunding(hourlyPct float64, hasFunding bool) float64 {
	if !hasFunding || p.FundingSaturationPct <= 0 {
		return 0.5
	}
	return clamp01(0.5 + hourlyPct/(2*p.FundingSaturationPct))
}

// scoreRSI maps RSI linearly from [floor,ceil] onto [0,1]; an overbought
// market is the favourable short entry.
func (p Params) scoreRSI(rsi float64) float64 {
	if p.RSICeil <= p.RSIFloor {
		return 0.5
	}
	return clamp01((rsi - p.RSIFloor) / (p.RSICeil - p.RSIFloor))
}

// scoreVolume maps 24h quote volume linearly onto [0,1], saturating at
// VolumeSaturation. Liquidity matters for fills, hence the small weight.
func (p Params) scoreVolume(quoteVolume float64) float64 {
	if p.VolumeSaturation <= 0 {
		return 0.5
	}
	return clamp01(quoteVolume / p.VolumeSaturation)
}

// scoreADX converts the trend classification into a discrete band score.
// A confirmed downtrend is the ideal short backdrop; a strong uptrend the
// worst.
func (p Params) scoreADX(adx model.ADXResult) float64 {
	switch adx.Direction {
	case model.DirectionDown:
		switch adx.Strength {
		case model.TrendStrong:
			return 0.9
		case model.TrendModerate:
			return 0.7
		default:
			return 0.6
		}
	case model.DirectionUp:
		switch adx.Strength {
		case model.TrendStrong:
			return 0.1
		case model.TrendModerate:
			return 0.3
		default:
			return 0.4
		}
	default:
		if adx.Strength == model.TrendWeak {
			return 0.4 // ranging market, slightly unfavourable
		}
		return 0.5
	}
}

// scoreMA walks a bonus/penalty ladder over the MA50/MA200 configuration
// and where price sits relative to both. A death cross with price under
// both averages is the strongest short setup.
func (p Params) scoreMA(price, ma50, ma200 float64) float64 {
	if ma50 <= 0 || ma200 <= 0 || price <= 0 {
		return 0.5
	}
	score := 0.5
	if ma50 < ma200 {
		score += 0.2
	} else {
		score -= 0.2
	}
	if price < ma50 {
		score += 0.15
	} else {
		score -= 0.15
	}
	if price < ma200 {
		score += 0.15
	} else {
		score -= 0.15
	}
	return clamp01(score)
}
