package seasonal

import (
	"sort"
	"time"

	"ShortSentinel/internal/model"
)

// SymbolPattern is one symbol's contribution to the market-wide aggregate.
type SymbolPattern struct {
	Symbol         string
	QuoteVolume24h float64
	Weekly         map[time.Weekday]model.DayPattern
	DayHour        *[7][24]model.DayHourCell
}

// DefaultMajorsExcluded is how many top-volume symbols the market aggregate
// drops so the pattern reflects altcoin behaviour distinct from the majors.
const DefaultMajorsExcluded = 10

// AggregateMarket merges per-symbol seasonality into one market-wide
// pattern, excluding the `excludeTop` highest-volume symbols. Weekly
// counters are summed across symbols and the win rate recomputed from the
// pooled counts; day-hour cells merge count-weighted (sum(avg*count) /
// sum(count)) so thinly-traded symbols cannot distort the grid.
func AggregateMarket(patterns []SymbolPattern, excludeTop int) *model.MarketPattern {
	if len(patterns) == 0 {
		return nil
	}

	sorted := make([]SymbolPattern, len(patterns))
	copy(sorted, patterns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].QuoteVolume24h > sorted[j].QuoteVolume24h
	})
	if excludeTop > 0 && excludeTop < len(sorted) {
		sorted = sorted[excludeTop:]
	}

	weekly := make(map[time.Weekday]model.DayPattern, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekly[d] = model.DayPattern{WinRate: 0.5}
	}
	var dhSums [7][24]float64
	var dhCounts [7][24]int

	used := 0
	for _, sp := range sorted {
		if sp.Weekly == nil && sp.DayHour == nil {
			continue
		}
		used++

		for d, p := range sp.Weekly {
			agg := weekly[d]
			if agg.TotalCount == 0 && p.TotalCount > 0 {
				agg.MaxChange, agg.MinChange = p.MaxChange, p.MinChange
			}
			agg.PositiveCount += p.PositiveCount
			agg.NegativeCount += p.NegativeCount
			agg.TotalCount += p.TotalCount
			if p.MaxChange > agg.MaxChange && p.TotalCount > 0 {
				agg.MaxChange = p.MaxChange
			}
			if p.MinChange < agg.MinChange && p.TotalCount > 0 {
				agg.MinChange = p.MinChange
			}
			// ATR percentages average count-weighted across symbols.
			agg.AvgATRPct += p.AvgATRPct * float64(p.TotalCount)
			weekly[d] = agg
		}

		if sp.DayHour != nil {
			for d := 0; d < 7; d++ {
				for h := 0; h < 24; h++ {
					cell := sp.DayHour[d][h]
					dhSums[d][h] += cell.AvgChange * float64(cell.TotalCount)
					dhCounts[d][h] += cell.TotalCount
				}
			}
		}
	}
	if used == 0 {
		return nil
	}

	for d, agg := range weekly {
		if agg.TotalCount > 0 {
			agg.WinRate = float64(agg.NegativeCount) / float64(agg.TotalCount)
			agg.AvgATRPct /= float64(agg.TotalCount)
		}
		weekly[d] = agg
	}

	mp := &model.MarketPattern{Weekly: weekly, SymbolCount: used, BuiltAt: time.Now()}
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			cell := model.DayHourCell{DayOfWeek: time.Weekday(d), Hour: h, TotalCount: dhCounts[d][h]}
			if dhCounts[d][h] > 0 {
				cell.AvgChange = dhSums[d][h] / float64(dhCounts[d][h])
			}
			mp.DayHour[d][h] = cell
		}
	}
	return mp
}
