package seasonal

import (
	"time"

	"ShortSentinel/internal/model"
)

// hourSaturationPct is the average intraday move (percent, relative to the
// 09:00 reference) at which the hourly component saturates.
const hourSaturationPct = 1.0

// TimingScore reads the market-wide pattern at the given wall-clock moment
// (converted to UTC+9) and returns a short-entry timing score in [0,1].
//
// The weekday component is today's pooled win rate. The hourly component
// maps the current cell's average deviation onto [0,1] with a +/-1%
// saturation band, inverted so that hours where the market typically sits
// below its morning reference score high for the short side. The two blend
// 50/50; with no usable pattern the result is the neutral 0.5.
func TimingScore(mp *model.MarketPattern, now time.Time) float64 {
	if mp == nil {
		return 0.5
	}
	t := now.In(MarketZone)

	dayScore := 0.5
	if p, ok := mp.Weekly[t.Weekday()]; ok && p.TotalCount > 0 {
		dayScore = p.WinRate
	}

	hourScore := 0.5
	cell := mp.DayHour[int(t.Weekday())][t.Hour()]
	if cell.TotalCount > 0 {
		hourScore = 0.5 - cell.AvgChange/(2*hourSaturationPct)
		if hourScore < 0 {
			hourScore = 0
		}
		if hourScore > 1 {
			hourScore = 1
		}
	}

	return 0.5*dayScore + 0.5*hourScore
}
