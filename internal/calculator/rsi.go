package calculator

import "errors"

// CalculateRSI computes a windowed RSI over the trailing `period` price changes.
// This is a plain average of the last `period` gains/losses, not Wilder
// smoothing; the short default period (9) is tuned to react quickly on
// high-volatility perpetuals. Returns 50.0 if data is insufficient and 100.0
// when there are no losses in the window.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 50.0, nil // neutral when data insufficient
	}

	var avgGain, avgLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
