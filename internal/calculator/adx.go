package calculator

import (
	"errors"
	"math"

	"ShortSentinel/internal/model"
)

// Classification cutoffs for the ADX reading and the DI gap that decides
// the trend direction.
const (
	adxStrongCutoff   = 25.0
	adxModerateCutoff = 20.0
	diDirectionGap    = 5.0
)

// CalculateADX computes the Average Directional Index with Wilder smoothing.
//
// +DM/-DM follow the standard rule: the greater directional move wins and
// must be positive. Smoothed values seed with the sum of the first `period`
// samples, then roll as (smoothed*(period-1) + new) / period. The final ADX
// is the arithmetic mean of every DX produced along the smoothing pass
// rather than a second Wilder smoothing of the DX series itself; this is a
// documented simplification applied consistently across all symbols, so
// relative rankings are unaffected.
//
// With fewer than 2*period candles the result is zeroed and neutral.
func CalculateADX(candles []model.Candle, period int) (model.ADXResult, error) {
	neutral := model.ADXResult{Strength: model.TrendWeak, Direction: model.DirectionNeutral}
	if period <= 0 {
		return neutral, errors.New("period must be positive")
	}
	if len(candles) < 2*period {
		return neutral, nil
	}

	n := len(candles) - 1
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	trs := make([]float64, n)
	for i := 1; i < len(candles); i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low
		if upMove > downMove && upMove > 0 {
			plusDM[i-1] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i-1] = downMove
		}
		prevClose := candles[i-1].Close
		trs[i-1] = math.Max(candles[i].High-candles[i].Low,
			math.Max(math.Abs(candles[i].High-prevClose), math.Abs(candles[i].Low-prevClose)))
	}

	// Seed with the sum of the first `period` samples.
	var smPlus, smMinus, smTR float64
	for i := 0; i < period; i++ {
		smPlus += plusDM[i]
		smMinus += minusDM[i]
		smTR += trs[i]
	}

	var dxSum float64
	var dxCount int
	var plusDI, minusDI float64

	step := func() {
		if smTR == 0 {
			plusDI, minusDI = 0, 0
			return
		}
		plusDI = smPlus / smTR * 100
		minusDI = smMinus / smTR * 100
		if plusDI+minusDI > 0 {
			dxSum += math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
			dxCount++
		}
	}

	step()
	p := float64(period)
	for i := period; i < n; i++ {
		smPlus = (smPlus*(p-1) + plusDM[i]) / p
		smMinus = (smMinus*(p-1) + minusDM[i]) / p
		smTR = (smTR*(p-1) + trs[i]) / p
		step()
	}

	result := model.ADXResult{PlusDI: plusDI, MinusDI: minusDI}
	if dxCount > 0 {
		result.ADX = dxSum / float64(dxCount)
	}

	switch {
	case result.ADX >= adxStrongCutoff:
		result.Strength = model.TrendStrong
	case result.ADX >= adxModerateCutoff:
		result.Strength = model.TrendModerate
	default:
		result.Strength = model.TrendWeak
	}

	switch {
	case plusDI > minusDI+diDirectionGap:
		result.Direction = model.DirectionUp
	case minusDI > plusDI+diDirectionGap:
		result.Direction = model.DirectionDown
	default:
		result.Direction = model.DirectionNeutral
	}

	return result, nil
}
