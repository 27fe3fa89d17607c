package calculator

import (
	"errors"

	"ShortSentinel/internal/model"
)

// CalculateSMA emits the simple moving average series over the candle closes.
// The series is aligned to candle timestamps and starts once `period`
// candles are available, so it is period-1 entries shorter than the input.
func CalculateSMA(candles []model.Candle, period int) ([]model.MAPoint, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(candles) < period {
		return nil, nil
	}
	points := make([]model.MAPoint, 0, len(candles)-period+1)
	var sum float64
	for i, c := range candles {
		sum += c.Close
		if i >= period {
			sum -= candles[i-period].Close
		}
		if i >= period-1 {
			points = append(points, model.MAPoint{Time: c.OpenTime, Value: sum / float64(period)})
		}
	}
	return points, nil
}

// CalculateVWMA emits the volume-weighted moving average series,
// sum(close*volume)/sum(volume) over the trailing window. Windows with zero
// total volume are skipped rather than emitted as a division by zero.
func CalculateVWMA(candles []model.Candle, period int) ([]model.MAPoint, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(candles) < period {
		return nil, nil
	}
	points := make([]model.MAPoint, 0, len(candles)-period+1)
	var pvSum, volSum float64
	for i, c := range candles {
		pvSum += c.Close * c.Volume
		volSum += c.Volume
		if i >= period {
			prev := candles[i-period]
			pvSum -= prev.Close * prev.Volume
			volSum -= prev.Volume
		}
		if i >= period-1 && volSum > 0 {
			points = append(points, model.MAPoint{Time: c.OpenTime, Value: pvSum / volSum})
		}
	}
	return points, nil
}

// CalculateMA is the generic entry point the collector uses: volumeWeighted
// selects VWMA, otherwise SMA.
func CalculateMA(candles []model.Candle, period int, volumeWeighted bool) ([]model.MAPoint, error) {
	if volumeWeighted {
		return CalculateVWMA(candles, period)
	}
	return CalculateSMA(candles, period)
}

// LastValue returns the most recent value of a moving-average series,
// or 0 if the series is empty.
func LastValue(points []model.MAPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Value
}

// Closes pulls the close series out of a candle slice.
func Closes(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}
