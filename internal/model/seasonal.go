package model

import "time"

// DayPattern accumulates close-to-close behaviour for one weekday.
// WinRate counts falling days, the metric that favours the short side.
type DayPattern struct {
	PositiveCount int
	NegativeCount int
	TotalCount    int
	WinRate       float64 // NegativeCount / TotalCount; 0.5 when no observations
	MaxChange     float64 // percent
	MinChange     float64 // percent
	AvgATRPct     float64 // mean rolling ATR as a percentage of close
}

// DayHourCell is one weekday x hour cell of the intraday seasonality grid.
// AvgChange is the mean percentage deviation from that day's 09:00 close.
type DayHourCell struct {
	DayOfWeek  time.Weekday
	Hour       int
	AvgChange  float64
	TotalCount int
}

// MarketPattern is the market-wide seasonality aggregate, built once per
// seasonality cycle from the symbol universe minus the top-volume majors.
type MarketPattern struct {
	Weekly      map[time.Weekday]DayPattern
	DayHour     [7][24]DayHourCell
	SymbolCount int
	BuiltAt     time.Time
}
