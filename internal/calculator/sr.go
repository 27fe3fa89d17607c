package calculator

import (
	"errors"

	"ShortSentinel/internal/model"
)

const (
	resistanceTouchBand = 0.98 // highs above 98% of the average high count as touches
	supportTouchBand    = 1.02 // lows below 102% of the average low count as touches
	shortTermWindow     = 10

	shortStopBuffer  = 1.02 // stop sits 2% beyond resistance
	longStopBuffer   = 0.98
	atrStopMult      = 1.5
	shortTargetShave = 1.01 // target sits 1% above support
	longTargetShave  = 0.99
)

// CalculateSupportResistance derives key levels from the trailing `lookback`
// candles. Resistance is the highest of the highs that reach 98% of the
// average high, with strength reported as the fraction of qualifying highs;
// support mirrors that around 102% of the average low. The pivot is the
// classic (H+L+C)/3 of the last candle. Short-term levels take the raw
// max/min over a min(10, n) window with no touch filter.
func CalculateSupportResistance(candles []model.Candle, lookback int) (model.SupportResistance, error) {
	if lookback <= 0 {
		return model.SupportResistance{}, errors.New("lookback must be positive")
	}
	if len(candles) == 0 {
		return model.SupportResistance{}, errors.New("no candles provided")
	}
	window := candles
	if len(window) > lookback {
		window = window[len(window)-lookback:]
	}

	var avgHigh, avgLow float64
	for _, c := range window {
		avgHigh += c.High
		avgLow += c.Low
	}
	avgHigh /= float64(len(window))
	avgLow /= float64(len(window))

	var resistance, support float64
	var resTouches, supTouches int
	for _, c := range window {
		if c.High >= avgHigh*resistanceTouchBand {
			resTouches++
			if c.High > resistance {
				resistance = c.High
			}
		}
		if c.Low <= avgLow*supportTouchBand {
			supTouches++
			if support == 0 || c.Low < support {
				support = c.Low
			}
		}
	}

	last := window[len(window)-1]
	sr := model.SupportResistance{
		Resistance:         resistance,
		Support:            support,
		Pivot:              (last.High + last.Low + last.Close) / 3,
		ResistanceStrength: float64(resTouches) / float64(len(window)) * 100,
		SupportStrength:    float64(supTouches) / float64(len(window)) * 100,
		CurrentPrice:       last.Close,
	}

	st := window
	if len(st) > shortTermWindow {
		st = st[len(st)-shortTermWindow:]
	}
	sr.ShortTermRes = st[0].High
	sr.ShortTermSup = st[0].Low
	for _, c := range st {
		if c.High > sr.ShortTermRes {
			sr.ShortTermRes = c.High
		}
		if c.Low < sr.ShortTermSup {
			sr.ShortTermSup = c.Low
		}
	}

	return sr, nil
}

// CalculateStopLoss plans the stop and target from levels and ATR.
//
// For shorts the stop is the further of resistance*1.02 and price+1.5*ATR:
// a tight resistance level must never understate risk in a high-volatility
// regime. The long side mirrors the rule. RiskRewardRatio of 0 signals
// "no valid setup" rather than an error.
func CalculateStopLoss(sr model.SupportResistance, side model.PositionSide, atr float64) model.StopLossInfo {
	price := sr.CurrentPrice
	if price <= 0 {
		return model.StopLossInfo{}
	}

	var stop, target, risk, reward float64
	switch side {
	case model.SideLong:
		stop = sr.Support * longStopBuffer
		if atrStop := price - atr*atrStopMult; atrStop < stop {
			stop = atrStop
		}
		target = sr.Resistance * longTargetShave
		risk = price - stop
		reward = target - price
	default: // short
		stop = sr.Resistance * shortStopBuffer
		if atrStop := price + atr*atrStopMult; atrStop > stop {
			stop = atrStop
		}
		target = sr.Support * shortTargetShave
		risk = stop - price
		reward = price - target
	}

	info := model.StopLossInfo{
		StopLoss:      stop,
		TargetPrice:   target,
		RiskPercent:   risk / price * 100,
		RewardPercent: reward / price * 100,
	}
	if risk > 0 && reward > 0 {
		info.RiskRewardRatio = reward / risk
	}
	return info
}
