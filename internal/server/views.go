package server

import (
	"time"

	"ShortSentinel/internal/model"
)

// JSON shapes the dashboard consumes. These are flattened views of the
// internal structs so the wire format can stay stable while internals move.

type scoresResponse struct {
	RefreshedAt time.Time  `json:"refreshed_at"`
	Source      string     `json:"source"`
	TimingScore float64    `json:"timing_score"`
	Scores      []scoreRow `json:"scores"`
}

type scoreRow struct {
	Symbol         string  `json:"symbol"`
	LastPrice      float64 `json:"last_price"`
	PriceChangePct float64 `json:"price_change_pct"`
	FinalScore     float64 `json:"final_score"`
	RSI            float64 `json:"rsi"`
	ADX            float64 `json:"adx"`
	TrendDirection string  `json:"trend_direction"`
	FundingHourly  float64 `json:"funding_hourly_pct"`
}

func toScoreRow(cs model.CoinScore) scoreRow {
	return scoreRow{
		Symbol:         cs.Symbol,
		LastPrice:      cs.Ticker.LastPrice,
		PriceChangePct: cs.Ticker.PriceChangePct,
		FinalScore:     cs.FinalScore,
		RSI:            cs.RSI,
		ADX:            cs.ADX.ADX,
		TrendDirection: string(cs.ADX.Direction),
		FundingHourly:  cs.HourlyFundingPct,
	}
}

type scoreDetail struct {
	scoreRow
	BaseScore   float64         `json:"base_score"`
	TimingScore float64         `json:"timing_score"`
	SubScores   model.SubScores `json:"sub_scores"`
	ATR         float64         `json:"atr"`
	MA50        float64         `json:"ma50"`
	MA200       float64         `json:"ma200"`
	VWMA20      float64         `json:"vwma20"`

	Resistance         float64 `json:"resistance"`
	Support            float64 `json:"support"`
	Pivot              float64 `json:"pivot"`
	ResistanceStrength float64 `json:"resistance_strength"`
	SupportStrength    float64 `json:"support_strength"`

	StopLoss        float64 `json:"stop_loss"`
	TargetPrice     float64 `json:"target_price"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`

	POC           float64 `json:"poc,omitempty"`
	ValueAreaHigh float64 `json:"value_area_high,omitempty"`
	ValueAreaLow  float64 `json:"value_area_low,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}

func toScoreDetail(cs model.CoinScore) scoreDetail {
	d := scoreDetail{
		scoreRow:           toScoreRow(cs),
		BaseScore:          cs.BaseScore,
		TimingScore:        cs.TimingScore,
		SubScores:          cs.Subs,
		ATR:                cs.ATR,
		MA50:               cs.MA50,
		MA200:              cs.MA200,
		VWMA20:             cs.VWMA20,
		Resistance:         cs.SR.Resistance,
		Support:            cs.SR.Support,
		Pivot:              cs.SR.Pivot,
		ResistanceStrength: cs.SR.ResistanceStrength,
		SupportStrength:    cs.SR.SupportStrength,
		StopLoss:           cs.Stop.StopLoss,
		TargetPrice:        cs.Stop.TargetPrice,
		RiskRewardRatio:    cs.Stop.RiskRewardRatio,
		ComputedAt:         cs.ComputedAt,
	}
	if cs.Profile != nil {
		d.POC = cs.Profile.POC
		d.ValueAreaHigh = cs.Profile.ValueAreaHigh
		d.ValueAreaLow = cs.Profile.ValueAreaLow
	}
	return d
}

type weekdayRow struct {
	Weekday   string  `json:"weekday"`
	WinRate   float64 `json:"win_rate"`
	Total     int     `json:"total"`
	Negative  int     `json:"negative"`
	Positive  int     `json:"positive"`
	MaxChange float64 `json:"max_change"`
	MinChange float64 `json:"min_change"`
	AvgATRPct float64 `json:"avg_atr_pct"`
}

type weeklyResponse struct {
	BuiltAt     time.Time    `json:"built_at"`
	SymbolCount int          `json:"symbol_count"`
	Days        []weekdayRow `json:"days"`
}

func toWeeklyResponse(mp *model.MarketPattern) weeklyResponse {
	resp := weeklyResponse{BuiltAt: mp.BuiltAt, SymbolCount: mp.SymbolCount}
	for d := time.Sunday; d <= time.Saturday; d++ {
		p := mp.Weekly[d]
		resp.Days = append(resp.Days, weekdayRow{
			Weekday:   d.String(),
			WinRate:   p.WinRate,
			Total:     p.TotalCount,
			Negative:  p.NegativeCount,
			Positive:  p.PositiveCount,
			MaxChange: p.MaxChange,
			MinChange: p.MinChange,
			AvgATRPct: p.AvgATRPct,
		})
	}
	return resp
}

type heatmapCell struct {
	Weekday   string  `json:"weekday"`
	Hour      int     `json:"hour"`
	AvgChange float64 `json:"avg_change"`
	Count     int     `json:"count"`
}

type heatmapResponse struct {
	BuiltAt     time.Time     `json:"built_at"`
	SymbolCount int           `json:"symbol_count"`
	Cells       []heatmapCell `json:"cells"`
}

func toHeatmapResponse(mp *model.MarketPattern) heatmapResponse {
	resp := heatmapResponse{BuiltAt: mp.BuiltAt, SymbolCount: mp.SymbolCount}
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			cell := mp.DayHour[d][h]
			resp.Cells = append(resp.Cells, heatmapCell{
				Weekday:   time.Weekday(d).String(),
				Hour:      h,
				AvgChange: cell.AvgChange,
				Count:     cell.TotalCount,
			})
		}
	}
	return resp
}
