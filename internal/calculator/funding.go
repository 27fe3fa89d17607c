package calculator

import (
	"time"

	"ShortSentinel/internal/model"
)

// fundingCycles are the funding intervals exchanges actually run, in hours.
var fundingCycles = []int{1, 4, 8}

// InferFundingInterval guesses the funding cycle length in hours when the
// exchange did not report it, from the time remaining until the next funding
// event: the remaining time can never exceed the cycle length, so the
// smallest known cycle that fits is taken. This is best-effort guesswork,
// not a guaranteed-correct computation; 8h (the most common cycle) is the
// fallback.
func InferFundingInterval(nextFunding, now time.Time) int {
	remaining := nextFunding.Sub(now)
	if remaining <= 0 {
		return 8
	}
	for _, cycle := range fundingCycles {
		if remaining <= time.Duration(cycle)*time.Hour {
			return cycle
		}
	}
	return 8
}

// HourlyFundingPct normalises a funding rate to percent per hour so that
// symbols on different funding cycles are comparable. Returns 0 when no
// funding info is available.
func HourlyFundingPct(info *model.FundingInfo, now time.Time) float64 {
	if info == nil {
		return 0
	}
	interval := info.IntervalHours
	if interval <= 0 {
		interval = InferFundingInterval(info.NextFundingTime, now)
	}
	return info.Rate * 100 / float64(interval)
}
