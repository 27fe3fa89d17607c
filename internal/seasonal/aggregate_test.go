package seasonal

import (
	"math"
	"testing"
	"time"

	"ShortSentinel/internal/model"
)

func symbolWithMonday(symbol string, volume float64, neg, pos int, hourAvg float64, hourCount int) SymbolPattern {
	weekly := map[time.Weekday]model.DayPattern{
		time.Monday: {
			NegativeCount: neg,
			PositiveCount: pos,
			TotalCount:    neg + pos,
			WinRate:       float64(neg) / float64(neg+pos),
		},
	}
	var grid [7][24]model.DayHourCell
	grid[int(time.Monday)][10] = model.DayHourCell{
		DayOfWeek: time.Monday, Hour: 10,
		AvgChange: hourAvg, TotalCount: hourCount,
	}
	return SymbolPattern{Symbol: symbol, QuoteVolume24h: volume, Weekly: weekly, DayHour: &grid}
}

func TestAggregateMarket_TopVolumeExcluded(t *testing.T) {
	// The majors symbol carries extreme values and the highest volume; with
	// excludeTop=1 it must not touch the aggregate.
	patterns := []SymbolPattern{
		symbolWithMonday("BTCUSDT", 1e10, 100, 0, -50, 100),
		symbolWithMonday("ALTAUSDT", 1e6, 3, 1, 1.0, 1),
		symbolWithMonday("ALTBUSDT", 2e6, 1, 3, 2.0, 3),
	}

	mp := AggregateMarket(patterns, 1)
	if mp == nil {
		t.Fatal("expected a market pattern")
	}
	if mp.SymbolCount != 2 {
		t.Fatalf("symbol count: got %d, want 2", mp.SymbolCount)
	}

	mon := mp.Weekly[time.Monday]
	if mon.TotalCount != 8 {
		t.Errorf("pooled total: got %d, want 8", mon.TotalCount)
	}
	if math.Abs(mon.WinRate-0.5) > 1e-9 { // (3+1) negative of 8
		t.Errorf("pooled win rate: got %.4f, want 0.5", mon.WinRate)
	}

	// Count-weighted merge: (1.0*1 + 2.0*3) / 4 = 1.75.
	cell := mp.DayHour[int(time.Monday)][10]
	if cell.TotalCount != 4 {
		t.Fatalf("cell count: got %d, want 4", cell.TotalCount)
	}
	if math.Abs(cell.AvgChange-1.75) > 1e-9 {
		t.Errorf("cell average: got %.4f, want 1.75", cell.AvgChange)
	}
}

func TestAggregateMarket_EmptyInputs(t *testing.T) {
	if AggregateMarket(nil, 10) != nil {
		t.Error("no patterns must return nil")
	}
	empty := []SymbolPattern{{Symbol: "AUSDT"}, {Symbol: "BUSDT"}}
	if AggregateMarket(empty, 0) != nil {
		t.Error("symbols without any pattern must return nil")
	}
}

func TestAggregateMarket_ExcludeLargerThanUniverse(t *testing.T) {
	// When the exclusion would empty the universe, everything is kept.
	patterns := []SymbolPattern{symbolWithMonday("ALTAUSDT", 1e6, 2, 2, 0.5, 4)}
	mp := AggregateMarket(patterns, 10)
	if mp == nil {
		t.Fatal("expected a market pattern")
	}
	if mp.Weekly[time.Monday].TotalCount != 4 {
		t.Errorf("lone symbol must survive oversized exclusion, total %d", mp.Weekly[time.Monday].TotalCount)
	}
}

func TestTimingScore(t *testing.T) {
	// Monday 10:30 in UTC+9.
	now := time.Date(2025, 6, 2, 10, 30, 0, 0, MarketZone)

	if got := TimingScore(nil, now); got != 0.5 {
		t.Errorf("nil pattern: got %.4f, want neutral 0.5", got)
	}

	mp := &model.MarketPattern{
		Weekly: map[time.Weekday]model.DayPattern{
			time.Monday: {NegativeCount: 8, PositiveCount: 2, TotalCount: 10, WinRate: 0.8},
		},
	}
	mp.DayHour[int(time.Monday)][10] = model.DayHourCell{AvgChange: -1, TotalCount: 5}

	// dayScore 0.8, hourScore 0.5 - (-1/2) = 1, blend 0.9.
	if got := TimingScore(mp, now); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("blend: got %.4f, want 0.9", got)
	}

	// Strong positive drift saturates the hour component at 0.
	mp.DayHour[int(time.Monday)][10] = model.DayHourCell{AvgChange: 3, TotalCount: 5}
	if got := TimingScore(mp, now); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("saturated hour: got %.4f, want 0.4", got)
	}

	// No observations for the current cell falls back to the neutral half.
	mp.DayHour[int(time.Monday)][10] = model.DayHourCell{}
	if got := TimingScore(mp, now); math.Abs(got-0.65) > 1e-9 {
		t.Errorf("empty cell: got %.4f, want 0.65", got)
	}

	if got := TimingScore(mp, now); got < 0 || got > 1 {
		t.Errorf("score out of range: %.4f", got)
	}
}
