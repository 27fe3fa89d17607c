package collector

import (
	"context"

	"ShortSentinel/internal/model"
)

// Exchange-neutral kline intervals; each fetcher translates to its API's
// own notation.
const (
	IntervalHourly = "1h"
	IntervalDaily  = "1d"
)

// Fetcher defines the interface for pulling market data from a futures
// exchange's public REST API. All calls honour context cancellation so a
// superseded refresh cycle stops fetching instead of racing a newer one.
type Fetcher interface {
	FetchTickers(ctx context.Context) ([]model.Ticker, error)
	FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error)
	FetchFunding(ctx context.Context, symbol string) (*model.FundingInfo, error)
	Name() string
}
