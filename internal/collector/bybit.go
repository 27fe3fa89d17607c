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

// BybitFetcher implements Fetcher against the Bybit v5 public REST API,
// linear (USDT perpetual) category.
type BybitFetcher struct {
	BaseURL  string
	Category string
	Client   *http.Client
}

// NewBybitFetcher creates a fetcher with optional proxy support.
func NewBybitFetcher(baseURL, proxyURL string) *BybitFetcher {
	if baseURL == "" {
		baseURL = "https://api.bybit.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BybitFetcher{
		BaseURL:  baseURL,
		Category: "linear",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BybitFetcher) Name() string { return "bybit" }

// bybitEnvelope is the common v5 response wrapper.
type bybitEnvelope struct {
	RetCode int             `json:"retCode"`
	RetMsg  string          `json:"retMsg"`
	Result  json.RawMessage `json:"result"`
	Time    int64           `json:"time"`
}

type bybitTicker struct {
	Symbol          string `json:"symbol"`
	LastPrice       string `json:"lastPrice"`
	Turnover24h     string `json:"turnover24h"`
	Price24hPcnt    string `json:"price24hPcnt"`
	FundingRate     string `json:"fundingRate"`
	NextFundingTime string `json:"nextFundingTime"`
}

func (f *BybitFetcher) FetchTickers(ctx context.Context) ([]model.Ticker, error) {
	endpoint := fmt.Sprintf("%s/v5/market/tickers?category=%s", f.BaseURL, f.Category)
	var result struct {
		List []bybitTicker `json:"list"`
	}
	if err := f.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}

	tickers := make([]model.Ticker, 0, len(result.List))
	for _, t := range result.List {
		price, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil || price <= 0 {
			continue
		}
		turnover, _ := strconv.ParseFloat(t.Turnover24h, 64)
		changePcnt, _ := strconv.ParseFloat(t.Price24hPcnt, 64)
		tickers = append(tickers, model.Ticker{
			Symbol:         t.Symbol,
			LastPrice:      price,
			QuoteVolume24h: turnover,
			PriceChangePct: changePcnt * 100, // API reports a fraction
		})
	}
	return tickers, nil
}

// bybitIntervals maps the exchange-neutral interval names to v5 notation.
var bybitIntervals = map[string]string{
	IntervalHourly: "60",
	IntervalDaily:  "D",
}

func (f *BybitFetcher) FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	apiInterval, ok := bybitIntervals[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}
	endpoint := fmt.Sprintf("%s/v5/market/kline?category=%s&symbol=%s&interval=%s&limit=%d",
		f.BaseURL, f.Category, url.QueryEscape(symbol), apiInterval, limit)

	var result struct {
		List [][]string `json:"list"`
	}
	if err := f.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch klines %s/%s: %w", symbol, interval, err)
	}

	step := bybitIntervalDuration(interval)
	candles := make([]model.Candle, 0, len(result.List))
	for _, row := range result.List {
		if len(row) < 6 {
			continue
		}
		startMs, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(row[1], 64)
		high, _ := strconv.ParseFloat(row[2], 64)
		low, _ := strconv.ParseFloat(row[3], 64)
		closePrice, _ := strconv.ParseFloat(row[4], 64)
		volume, _ := strconv.ParseFloat(row[5], 64)
		openTime := time.UnixMilli(startMs)
		candles = append(candles, model.Candle{
			OpenTime:  openTime,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
			CloseTime: openTime.Add(step),
		})
	}
	// v5 returns newest first; analysis wants chronological order.
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return dedupCandles(candles), nil
}

func (f *BybitFetcher) FetchFunding(ctx context.Context, symbol string) (*model.FundingInfo, error) {
	// The linear tickers endpoint already carries the live funding state.
	endpoint := fmt.Sprintf("%s/v5/market/tickers?category=%s&symbol=%s",
		f.BaseURL, f.Category, url.QueryEscape(symbol))
	var result struct {
		List []bybitTicker `json:"list"`
	}
	if err := f.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch funding %s: %w", symbol, err)
	}
	if len(result.List) == 0 {
		return nil, fmt.Errorf("fetch funding %s: no ticker returned", symbol)
	}
	t := result.List[0]
	rate, err := strconv.ParseFloat(t.FundingRate, 64)
	if err != nil {
		return nil, fmt.Errorf("fetch funding %s: bad rate %q", symbol, t.FundingRate)
	}
	info := &model.FundingInfo{Symbol: symbol, Rate: rate}
	if ms, err := strconv.ParseInt(t.NextFundingTime, 10, 64); err == nil && ms > 0 {
		info.NextFundingTime = time.UnixMilli(ms)
	}
	return info, nil
}

// getJSON performs a GET with exponential-backoff retries and decodes the
// v5 envelope's result field into out.
func (f *BybitFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
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
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
		}
		var envelope bybitEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		if envelope.RetCode != 0 {
			return backoff.Permanent(fmt.Errorf("api error %d: %s", envelope.RetCode, envelope.RetMsg))
		}
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode result: %w", err))
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}

func bybitIntervalDuration(interval string) time.Duration {
	if interval == IntervalDaily {
		return 24 * time.Hour
	}
	return time.Hour
}

// dedupCandles drops duplicate open timestamps, keeping the last occurrence.
// Exchanges occasionally return the in-progress bar twice across pages.
func dedupCandles(candles []model.Candle) []model.Candle {
	if len(candles) < 2 {
		return candles
	}
	out := candles[:0]
	for i, c := range candles {
		if i+1 < len(candles) && candles[i+1].OpenTime.Equal(c.OpenTime) {
			continue
		}
		out = append(out, c)
	}
	return out
}
