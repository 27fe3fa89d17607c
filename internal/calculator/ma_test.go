package calculator

import (
	"math"
	"testing"
	"time"

	"ShortSentinel/internal/model"
)

func risingCandles(n int, volume float64) []model.Candle {
	candles := make([]model.Candle, n)
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		price := 100.0 + float64(i)
		candles[i] = model.Candle{
			OpenTime: t0.Add(time.Duration(i) * time.Hour),
			Open:     price, High: price + 1, Low: price - 1, Close: price,
			Volume: volume,
		}
	}
	return candles
}

// naiveSMA is the O(n*period) reference implementation the rolling version
// must agree with.
func naiveSMA(candles []model.Candle, period, at int) float64 {
	sum := 0.0
	for i := at - period + 1; i <= at; i++ {
		sum += candles[i].Close
	}
	return sum / float64(period)
}

func TestCalculateSMA_LengthAndValues(t *testing.T) {
	const period = 5
	candles := risingCandles(30, 10)
	points, err := CalculateSMA(candles, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLen := len(candles) - period + 1
	if len(points) != wantLen {
		t.Fatalf("expected %d points, got %d", wantLen, len(points))
	}
	for i, pt := range points {
		at := i + period - 1
		if want := naiveSMA(candles, period, at); math.Abs(pt.Value-want) > 1e-9 {
			t.Errorf("point %d: got %.6f, want %.6f", i, pt.Value, want)
		}
		if !pt.Time.Equal(candles[at].OpenTime) {
			t.Errorf("point %d: misaligned timestamp", i)
		}
	}
}

func TestCalculateSMA_InsufficientData(t *testing.T) {
	points, err := CalculateSMA(risingCandles(3, 10), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points != nil {
		t.Errorf("expected no points below the lookback window, got %d", len(points))
	}
}

func TestCalculateVWMA_UniformVolumeEqualsSMA(t *testing.T) {
	const period = 7
	candles := risingCandles(40, 123.45)
	sma, err := CalculateSMA(candles, period)
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	vwma, err := CalculateVWMA(candles, period)
	if err != nil {
		t.Fatalf("vwma: %v", err)
	}
	if len(sma) != len(vwma) {
		t.Fatalf("length mismatch: sma %d, vwma %d", len(sma), len(vwma))
	}
	for i := range sma {
		if math.Abs(sma[i].Value-vwma[i].Value) > 1e-9 {
			t.Errorf("point %d: vwma %.6f != sma %.6f under uniform volume", i, vwma[i].Value, sma[i].Value)
		}
	}
}

func TestCalculateVWMA_ZeroVolumeWindowSkipped(t *testing.T) {
	candles := risingCandles(10, 0)
	vwma, err := CalculateVWMA(candles, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vwma) != 0 {
		t.Errorf("zero-volume windows must emit nothing, got %d points", len(vwma))
	}
}

func TestCalculateMA_Dispatch(t *testing.T) {
	candles := risingCandles(20, 10)
	sma, err := CalculateMA(candles, 5, false)
	if err != nil {
		t.Fatalf("sma dispatch: %v", err)
	}
	vwma, err := CalculateMA(candles, 5, true)
	if err != nil {
		t.Fatalf("vwma dispatch: %v", err)
	}
	if len(sma) == 0 || len(vwma) == 0 {
		t.Fatal("expected non-empty series from both paths")
	}
	if LastValue(sma) == 0 || LastValue(vwma) == 0 {
		t.Error("LastValue must return the newest entry")
	}
	if LastValue(nil) != 0 {
		t.Error("LastValue of empty series must be 0")
	}
}
