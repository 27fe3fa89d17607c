package seasonal

import (
	"time"

	"ShortSentinel/internal/model"
)

// DayHourPattern builds the 7x24 intraday seasonality grid from hourly
// candles. For each trading day (UTC+9) the 09:00 candle's close is the
// fixed reference, and every hour of that day is expressed as a percentage
// deviation from it, so a cell reads as "how far has price moved since the
// morning open". Days without a 09:00 candle are skipped. The 09:00 cell is
// always exactly 0 by construction.
//
// Returns nil when fewer than 24 hourly candles are available.
func DayHourPattern(hourlyCandles []model.Candle) *[7][24]model.DayHourCell {
	if len(hourlyCandles) < minDayHourCandles {
		return nil
	}

	// Group candles by their UTC+9 calendar date.
	type dayKey struct{ y, m, d int }
	byDay := make(map[dayKey][]model.Candle)
	var order []dayKey
	for _, c := range hourlyCandles {
		t := c.OpenTime.In(MarketZone)
		k := dayKey{t.Year(), int(t.Month()), t.Day()}
		if _, seen := byDay[k]; !seen {
			order = append(order, k)
		}
		byDay[k] = append(byDay[k], c)
	}

	var sums [7][24]float64
	var counts [7][24]int

	for _, k := range order {
		candles := byDay[k]

		var refPrice float64
		for _, c := range candles {
			if c.OpenTime.In(MarketZone).Hour() == ReferenceHour {
				refPrice = c.Close
				break
			}
		}
		if refPrice <= 0 {
			continue
		}

		for _, c := range candles {
			t := c.OpenTime.In(MarketZone)
			dow, hour := int(t.Weekday()), t.Hour()
			sums[dow][hour] += (c.Close - refPrice) / refPrice * 100
			counts[dow][hour]++
		}
	}

	var grid [7][24]model.DayHourCell
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			cell := model.DayHourCell{DayOfWeek: time.Weekday(d), Hour: h, TotalCount: counts[d][h]}
			if counts[d][h] > 0 {
				cell.AvgChange = sums[d][h] / float64(counts[d][h])
			}
			grid[d][h] = cell
		}
	}
	return &grid
}
