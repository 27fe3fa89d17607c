package calculator

import (
	"math"
	"testing"
	"time"

	"ShortSentinel/internal/model"
)

func TestInferFundingInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		remaining time.Duration
		want      int
	}{
		{"half hour left", 30 * time.Minute, 1},
		{"exactly one hour", time.Hour, 1},
		{"three hours", 3 * time.Hour, 4},
		{"seven hours", 7 * time.Hour, 8},
		{"past due", -time.Minute, 8},
		{"absurdly far", 20 * time.Hour, 8},
	}
	for _, tt := range tests {
		if got := InferFundingInterval(now.Add(tt.remaining), now); got != tt.want {
			t.Errorf("%s: got %dh, want %dh", tt.name, got, tt.want)
		}
	}
}

func TestHourlyFundingPct(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Explicit 8h cycle: 0.01% per period is 0.00125% per hour.
	info := &model.FundingInfo{Rate: 0.0001, IntervalHours: 8}
	if got := HourlyFundingPct(info, now); math.Abs(got-0.00125) > 1e-12 {
		t.Errorf("explicit interval: got %.6f, want 0.00125", got)
	}

	// Missing interval, 3h until funding: a 4h cycle is inferred.
	info = &model.FundingInfo{Rate: 0.0004, NextFundingTime: now.Add(3 * time.Hour)}
	if got := HourlyFundingPct(info, now); math.Abs(got-0.01) > 1e-12 {
		t.Errorf("inferred interval: got %.6f, want 0.01", got)
	}

	if got := HourlyFundingPct(nil, now); got != 0 {
		t.Errorf("nil funding info must give 0, got %.6f", got)
	}
}
