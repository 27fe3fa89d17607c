package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"ShortSentinel/internal/model"
)

// BinanceFetcher implements Fetcher against the Binance USDT-M futures
// public REST API. It exists as an alternative data source for deployments
// where Bybit is unreachable.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = "https://fapi.binance.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchTickers(ctx context.Context) ([]model.Ticker, error) {
	endpoint := f.BaseURL + "/fapi/v1/ticker/24hr"
	var rows []struct {
		Symbol             string `json:"symbol"`
		LastPrice          string `json:"lastPrice"`
		QuoteVolume        string `json:"quoteVolume"`
		PriceChangePercent string `json:"priceChangePercent"`
	}
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}
	tickers := make([]model.Ticker, 0, len(rows))
	for _, r := range rows {
		price, err := strconv.ParseFloat(r.LastPrice, 64)
		if err != nil || price <= 0 {
			continue
		}
		quoteVol, _ := strconv.ParseFloat(r.QuoteVolume, 64)
		changePct, _ := strconv.ParseFloat(r.PriceChangePercent, 64)
		tickers = append(tickers, model.Ticker{
			Symbol:         r.Symbol,
			LastPrice:      price,
			QuoteVolume24h: quoteVol,
			PriceChangePct: changePct,
		})
	}
	return tickers, nil
}

func (f *BinanceFetcher) FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	// Binance uses the same 1h/1d notation as the neutral interval names.
	endpoint := fmt.Sprintf("%s/fapi/v1/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), interval, limit)

	var rows [][]json.RawMessage
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("fetch klines %s/%s: %w", symbol, interval, err)
	}

	candles := make([]model.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			continue
		}
		var openMs, closeMs int64
		var open, high, low, closePrice, volume string
		if err := json.Unmarshal(row[0], &openMs); err != nil {
			continue
		}
		json.Unmarshal(row[1], &open)
		json.Unmarshal(row[2], &high)
		json.Unmarshal(row[3], &low)
		json.Unmarshal(row[4], &closePrice)
		json.Unmarshal(row[5], &volume)
		json.Unmarshal(row[6], &closeMs)

		c := model.Candle{
			OpenTime:  time.UnixMilli(openMs),
			CloseTime: time.UnixMilli(closeMs),
		}
		c.Open, _ = strconv.ParseFloat(open, 64)
		c.High, _ = strconv.ParseFloat(high, 64)
		c.Low, _ = strconv.ParseFloat(low, 64)
		c.Close, _ = strconv.ParseFloat(closePrice, 64)
		c.Volume, _ = strconv.ParseFloat(volume, 64)
		candles = append(candles, c)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return dedupCandles(candles), nil
}

func (f *BinanceFetcher) FetchFunding(ctx context.Context, symbol string) (*model.FundingInfo, error) {
	endpoint := fmt.Sprintf("%s/fapi/v1/premiumIndex?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var result struct {
		Symbol          string `json:"symbol"`
		LastFundingRate string `json:"lastFundingRate"`
		NextFundingTime int64  `json:"nextFundingTime"`
	}
	if err := f.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch funding %s: %w", symbol, err)
	}
	rate, err := strconv.ParseFloat(result.LastFundingRate, 64)
	if err != nil {
		return nil, fmt.Errorf("fetch funding %s: bad rate %q", symbol, result.LastFundingRate)
	}
	info := &model.FundingInfo{Symbol: symbol, Rate: rate, IntervalHours: 8}
	if result.NextFundingTime > 0 {
		info.NextFundingTime = time.UnixMilli(result.NextFundingTime)
	}
	return info, nil
}

func (f *BinanceFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := f.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}
