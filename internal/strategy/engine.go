package strategy

import (
	"sort"

	"ShortSentinel/internal/calculator"
	"ShortSentinel/internal/model"
)

// Engine turns per-symbol indicator results into composite short-suitability
// scores. It holds only the tunable parameters; all state flows through
// arguments, so one engine is safe to share across cycles.
type Engine struct {
	params Params
}

// NewEngine creates an Engine with the given parameters.
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Score fills in the sub-scores and the weighted base score (0-100 scale,
// before the timing adjustment) of a CoinScore whose indicator fields are
// already populated. Missing optional inputs (no profile, no ATR, no
// funding) degrade to neutral 0.5 sub-scores; nothing here can fail.
func (e *Engine) Score(cs *model.CoinScore) {
	p := e.params
	price := cs.Ticker.LastPrice

	var profileScore float64
	if cs.Profile != nil {
		profileScore = calculator.CalculateProfileScore(price, cs.Profile, cs.ATR)
	} else {
		profileScore = 0.5
	}

	cs.Subs = model.SubScores{
		Funding: p.scoreFunding(cs.HourlyFundingPct, cs.HourlyFundingPct != 0),
		RSI:     p.scoreRSI(cs.RSI),
		Volume:  p.scoreVolume(cs.Ticker.QuoteVolume24h),
		ADX:     p.scoreADX(cs.ADX),
		MA:      p.scoreMA(price, cs.MA50, cs.MA200),
		VPVR:    profileScore,
	}

	w := p.Weights
	cs.BaseScore = (w.VPVR*cs.Subs.VPVR +
		w.ADX*cs.Subs.ADX +
		w.RSI*cs.Subs.RSI +
		w.Funding*cs.Subs.Funding +
		w.MA*cs.Subs.MA +
		w.Volume*cs.Subs.Volume) * 100
}

// ApplyTiming adds the market-cycle timing adjustment and produces the
// final score, clamped to [0,100]. The timing score is computed once per
// cycle from the aggregated seasonality and shared by every symbol.
func (e *Engine) ApplyTiming(cs *model.CoinScore, timingScore float64) {
	cs.TimingScore = timingScore
	final := cs.BaseScore + e.params.Weights.Timing*timingScore*100
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	cs.FinalScore = final
}

// Rank sorts scores descending by final score. The sort is stable, so ties
// keep their input order.
func Rank(scores []model.CoinScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].FinalScore > scores[j].FinalScore
	})
}
