// Package seasonal computes weekday and intraday seasonality patterns.
// All calendar math runs in a fixed UTC+9 offset so the analysis is tied to
// one reference market clock instead of whatever zone the host runs in.
package seasonal

import (
	"time"

	"ShortSentinel/internal/calculator"
	"ShortSentinel/internal/model"
)

// MarketZone is the fixed reference clock for all seasonality buckets.
var MarketZone = time.FixedZone("UTC+9", 9*60*60)

const (
	minWeeklyCandles  = 7
	weeklyATRPeriod   = 14
	minDayHourCandles = 24

	// ReferenceHour anchors the intraday pattern: every hour's close is
	// expressed as deviation from this hour's close on the same day.
	ReferenceHour = 9
)

// WeeklyPattern partitions daily candles by weekday (UTC+9) and accumulates
// close-to-close percentage changes. WinRate is the fraction of bars where
// the market fell, the reading that favours a short bias. A weekday with no
// observations stays at the neutral 0.5, and a rolling 14-period ATR
// percentage is tracked per weekday for volatility context.
//
// Returns nil when fewer than 7 daily candles are available.
func WeeklyPattern(dailyCandles []model.Candle) map[time.Weekday]model.DayPattern {
	if len(dailyCandles) < minWeeklyCandles {
		return nil
	}

	type acc struct {
		pattern   model.DayPattern
		atrPctSum float64
		atrCount  int
	}
	days := make(map[time.Weekday]*acc, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = &acc{pattern: model.DayPattern{MaxChange: -1e18, MinChange: 1e18}}
	}

	for i := 1; i < len(dailyCandles); i++ {
		prev := dailyCandles[i-1].Close
		if prev <= 0 {
			continue
		}
		c := dailyCandles[i]
		change := (c.Close - prev) / prev * 100
		a := days[c.OpenTime.In(MarketZone).Weekday()]

		a.pattern.TotalCount++
		if change < 0 {
			a.pattern.NegativeCount++
		} else {
			a.pattern.PositiveCount++
		}
		if change > a.pattern.MaxChange {
			a.pattern.MaxChange = change
		}
		if change < a.pattern.MinChange {
			a.pattern.MinChange = change
		}

		if i >= weeklyATRPeriod && c.Close > 0 {
			if atr, err := calculator.CalculateATR(dailyCandles[:i+1], weeklyATRPeriod); err == nil && atr > 0 {
				a.atrPctSum += atr / c.Close * 100
				a.atrCount++
			}
		}
	}

	result := make(map[time.Weekday]model.DayPattern, 7)
	for d, a := range days {
		p := a.pattern
		if p.TotalCount > 0 {
			p.WinRate = float64(p.NegativeCount) / float64(p.TotalCount)
		} else {
			p.WinRate = 0.5
			p.MaxChange, p.MinChange = 0, 0
		}
		if a.atrCount > 0 {
			p.AvgATRPct = a.atrPctSum / float64(a.atrCount)
		}
		result[d] = p
	}
	return result
}
