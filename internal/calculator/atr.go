package calculator

import (
	"errors"
	"math"

	"ShortSentinel/internal/model"
)

// trueRanges returns the true range of each candle after the first.
func trueRanges(candles []model.Candle) []float64 {
	if len(candles) < 2 {
		return nil
	}
	trs := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		c := candles[i]
		prevClose := candles[i-1].Close
		tr := math.Max(c.High-c.Low,
			math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
		trs = append(trs, tr)
	}
	return trs
}

// CalculateATR computes the simple mean of the most recent `period` true
// ranges. Unlike the ADX path this is deliberately not Wilder-smoothed.
// Returns 0 with no error when fewer than two candles are available; with
// fewer than `period` true ranges it averages whatever exists.
func CalculateATR(candles []model.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	trs := trueRanges(candles)
	if len(trs) == 0 {
		return 0, nil
	}
	if len(trs) > period {
		trs = trs[len(trs)-period:]
	}
	sum := 0.0
	for _, tr := range trs {
		sum += tr
	}
	return sum / float64(len(trs)), nil
}
