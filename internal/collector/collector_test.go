package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"ShortSentinel/internal/model"
)

func mockMarket(symbols map[string]float64) *MockFetcher {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	m := &MockFetcher{
		Tickers: make(map[string]model.Ticker),
		Hourly:  make(map[string][]model.Candle),
		Daily:   make(map[string][]model.Candle),
		Funding: make(map[string]*model.FundingInfo),
	}
	for symbol, volume := range symbols {
		m.Tickers[symbol] = model.Ticker{Symbol: symbol, LastPrice: 100, QuoteVolume24h: volume}
		m.Hourly[symbol] = GenerateCandles(100, 250, time.Hour, start)
		m.Daily[symbol] = GenerateCandles(100, 40, 24*time.Hour, start)
		m.Funding[symbol] = &model.FundingInfo{Symbol: symbol, Rate: 0.0001, IntervalHours: 8}
	}
	return m
}

func TestCollect_TopVolumeUniverse(t *testing.T) {
	fetcher := mockMarket(map[string]float64{
		"BIGUSDT": 3e9,
		"MIDUSDT": 2e9,
		"LOWUSDT": 1e6,
	})
	opts := DefaultOptions()
	opts.UniverseSize = 2

	result, err := NewCollector(fetcher, opts).Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Scores) != 2 {
		t.Fatalf("expected 2 analyzed symbols, got %d", len(result.Scores))
	}
	for _, cs := range result.Scores {
		if cs.Symbol == "LOWUSDT" {
			t.Error("lowest-volume symbol must be cut from the universe")
		}
	}
}

func TestCollect_FailingSymbolSkipped(t *testing.T) {
	fetcher := mockMarket(map[string]float64{
		"GOODUSDT": 2e9,
		"BADUSDT":  3e9,
	})
	fetcher.FailSymbols = map[string]error{"BADUSDT": errors.New("exchange 503")}

	result, err := NewCollector(fetcher, DefaultOptions()).Collect(context.Background())
	if err != nil {
		t.Fatalf("one bad symbol must not fail the pass: %v", err)
	}
	if len(result.Scores) != 1 || result.Scores[0].Symbol != "GOODUSDT" {
		t.Fatalf("expected only GOODUSDT to survive, got %+v", result.Scores)
	}
}

func TestCollect_IndicatorsPopulated(t *testing.T) {
	fetcher := mockMarket(map[string]float64{"ALTUSDT": 1e9})

	result, err := NewCollector(fetcher, DefaultOptions()).Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(result.Scores))
	}

	cs := result.Scores[0]
	if cs.RSI < 0 || cs.RSI > 100 {
		t.Errorf("RSI out of range: %.4f", cs.RSI)
	}
	if cs.ATR <= 0 {
		t.Errorf("ATR not computed: %.4f", cs.ATR)
	}
	if cs.MA50 <= 0 || cs.MA200 <= 0 || cs.VWMA20 <= 0 {
		t.Errorf("moving averages missing: ma50 %.4f ma200 %.4f vwma %.4f", cs.MA50, cs.MA200, cs.VWMA20)
	}
	if cs.SR.Resistance <= cs.SR.Support {
		t.Errorf("support/resistance not computed: %+v", cs.SR)
	}
	if cs.Stop.StopLoss <= cs.SR.CurrentPrice {
		t.Errorf("short stop must sit above price: stop %.4f price %.4f", cs.Stop.StopLoss, cs.SR.CurrentPrice)
	}
	if cs.Profile == nil {
		t.Error("volume profile missing")
	}
	if cs.HourlyFundingPct == 0 {
		t.Error("hourly funding not derived from the funding info")
	}
	if cs.ComputedAt.IsZero() {
		t.Error("ComputedAt not stamped")
	}

	if len(result.Patterns) != 1 {
		t.Fatalf("expected 1 seasonality pattern, got %d", len(result.Patterns))
	}
	p := result.Patterns[0]
	if p.Symbol != "ALTUSDT" || p.Weekly == nil || p.DayHour == nil {
		t.Errorf("pattern incomplete: %+v", p.Symbol)
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	fetcher := mockMarket(map[string]float64{"ALTUSDT": 1e9})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewCollector(fetcher, DefaultOptions()).Collect(ctx); err == nil {
		t.Fatal("cancelled context must abort the pass")
	}
}
