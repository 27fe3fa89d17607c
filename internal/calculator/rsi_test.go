package calculator

import (
	"math"
	"testing"
)

func TestCalculateRSI_InsufficientData(t *testing.T) {
	rsi, err := CalculateRSI([]float64{100, 101, 102}, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50.0 {
		t.Errorf("expected neutral 50 for insufficient data, got %.2f", rsi)
	}
}

func TestCalculateRSI_InvalidPeriod(t *testing.T) {
	if _, err := CalculateRSI([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateRSI_FlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50
	}
	rsi, err := CalculateRSI(closes, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("zero-loss window must return 100, got %.2f", rsi)
	}
	if math.IsNaN(rsi) {
		t.Error("RSI must never be NaN")
	}
}

func TestCalculateRSI_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
	}{
		{"all up", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{"all down", []float64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
		{"mixed", []float64{10, 12, 9, 14, 8, 15, 7, 16, 6, 17, 5, 18}},
	}
	for _, tt := range tests {
		rsi, err := CalculateRSI(tt.closes, 9)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if rsi < 0 || rsi > 100 {
			t.Errorf("%s: RSI %.2f out of [0,100]", tt.name, rsi)
		}
	}
}

func TestCalculateRSI_WindowedAverage(t *testing.T) {
	// Last 4 deltas: +2, -1, +2, -1. avgGain 1.0, avgLoss 0.5, RS 2, RSI 66.67.
	closes := []float64{100, 100, 102, 101, 103, 102}
	rsi, err := CalculateRSI(closes, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 100.0 - 100.0/(1.0+2.0)
	if math.Abs(rsi-want) > 1e-9 {
		t.Errorf("expected %.4f, got %.4f", want, rsi)
	}
}
