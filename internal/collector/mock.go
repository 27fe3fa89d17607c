package collector

import (
	"context"
	"time"

	"ShortSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Tickers map[string]model.Ticker
	Hourly  map[string][]model.Candle
	Daily   map[string][]model.Candle
	Funding map[string]*model.FundingInfo

	FailSymbols map[string]error // symbols whose kline fetch should fail
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchTickers(_ context.Context) ([]model.Ticker, error) {
	tickers := make([]model.Ticker, 0, len(m.Tickers))
	for _, t := range m.Tickers {
		tickers = append(tickers, t)
	}
	return tickers, nil
}

func (m *MockFetcher) FetchKlines(_ context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	if err, ok := m.FailSymbols[symbol]; ok {
		return nil, err
	}
	var candles []model.Candle
	if interval == IntervalDaily {
		candles = m.Daily[symbol]
	} else {
		candles = m.Hourly[symbol]
	}
	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

func (m *MockFetcher) FetchFunding(_ context.Context, symbol string) (*model.FundingInfo, error) {
	if info, ok := m.Funding[symbol]; ok {
		return info, nil
	}
	return &model.FundingInfo{Symbol: symbol, IntervalHours: 8}, nil
}

// GenerateCandles builds a deterministic drifting series for tests and the
// development fetcher.
func GenerateCandles(basePrice float64, count int, step time.Duration, start time.Time) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		t := start.Add(time.Duration(i) * step)
		candles[i] = model.Candle{
			OpenTime:  t,
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1_000_000,
			CloseTime: t.Add(step),
		}
	}
	return candles
}
