package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"ShortSentinel/internal/calculator"
	"ShortSentinel/internal/model"
	"ShortSentinel/internal/seasonal"
)

// Options are the tunable knobs of a refresh pass. Periods are
// configuration rather than literals so the indicator windows can be tuned
// without a rebuild.
type Options struct {
	UniverseSize int `yaml:"universe_size"` // top-N symbols by quote volume
	HourlyLimit  int `yaml:"hourly_limit"`  // hourly candles fetched per symbol
	DailyLimit   int `yaml:"daily_limit"`   // daily candles fetched per symbol

	RSIPeriod    int `yaml:"rsi_period"`
	ATRPeriod    int `yaml:"atr_period"`
	ADXPeriod    int `yaml:"adx_period"`
	FastMAPeriod int `yaml:"fast_ma_period"`
	SlowMAPeriod int `yaml:"slow_ma_period"`
	VWMAPeriod   int `yaml:"vwma_period"`
	SRLookback   int `yaml:"sr_lookback"`
	ProfileBins  int `yaml:"profile_bins"`
}

// DefaultOptions returns the periods the dashboard ships with. The RSI
// period is 9, shorter than the textbook 14, to react faster on volatile
// perpetuals.
func DefaultOptions() Options {
	return Options{
		UniverseSize: 100,
		HourlyLimit:  200,
		DailyLimit:   90,
		RSIPeriod:    9,
		ATRPeriod:    14,
		ADXPeriod:    14,
		FastMAPeriod: 50,
		SlowMAPeriod: 200,
		VWMAPeriod:   20,
		SRLookback:   20,
		ProfileBins:  calculator.DefaultProfileBins,
	}
}

// Result is everything one refresh pass produced: indicator-filled scores
// (composite scoring happens downstream) and the per-symbol seasonality
// inputs for the market aggregate.
type Result struct {
	Scores    []model.CoinScore
	Patterns  []seasonal.SymbolPattern
	StartedAt time.Time
}

// Collector orchestrates data fetching and indicator computation for the
// whole symbol universe.
type Collector struct {
	Fetcher Fetcher
	Opts    Options
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, opts Options) *Collector {
	return &Collector{Fetcher: fetcher, Opts: opts}
}

// Collect runs one refresh pass: pick the top-volume universe from the
// tickers, then analyze symbols sequentially. The pass stops early when ctx
// is cancelled (a newer cycle supersedes this one); a single symbol's
// failure is logged and skipped, never aborting the rest of the pass.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	started := time.Now()

	tickers, err := c.Fetcher.FetchTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}
	sort.SliceStable(tickers, func(i, j int) bool {
		return tickers[i].QuoteVolume24h > tickers[j].QuoteVolume24h
	})
	if c.Opts.UniverseSize > 0 && len(tickers) > c.Opts.UniverseSize {
		tickers = tickers[:c.Opts.UniverseSize]
	}

	result := &Result{StartedAt: started}
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("refresh cycle superseded: %w", err)
		}
		score, pattern, err := c.analyzeSymbol(ctx, ticker)
		if err != nil {
			log.Printf("[WARN] analyze %s failed, skipping: %v", ticker.Symbol, err)
			continue
		}
		result.Scores = append(result.Scores, *score)
		result.Patterns = append(result.Patterns, *pattern)
	}
	return result, nil
}

// analyzeSymbol fetches one symbol's candles and funding and computes every
// indicator. Individual indicator failures degrade to documented neutral
// defaults instead of failing the symbol.
func (c *Collector) analyzeSymbol(ctx context.Context, ticker model.Ticker) (*model.CoinScore, *seasonal.SymbolPattern, error) {
	hourly, err := c.Fetcher.FetchKlines(ctx, ticker.Symbol, IntervalHourly, c.Opts.HourlyLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("hourly klines: %w", err)
	}
	daily, err := c.Fetcher.FetchKlines(ctx, ticker.Symbol, IntervalDaily, c.Opts.DailyLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("daily klines: %w", err)
	}
	if len(hourly) == 0 {
		return nil, nil, fmt.Errorf("no hourly candles")
	}

	cs := &model.CoinScore{
		Symbol:     ticker.Symbol,
		Ticker:     ticker,
		ComputedAt: time.Now(),
	}

	closes := calculator.Closes(hourly)
	if rsi, err := calculator.CalculateRSI(closes, c.Opts.RSIPeriod); err != nil {
		log.Printf("[WARN] %s RSI failed: %v, defaulting to 50", ticker.Symbol, err)
		cs.RSI = 50
	} else {
		cs.RSI = rsi
	}

	if atr, err := calculator.CalculateATR(hourly, c.Opts.ATRPeriod); err != nil {
		log.Printf("[WARN] %s ATR failed: %v, defaulting to 0", ticker.Symbol, err)
	} else {
		cs.ATR = atr
	}

	if adx, err := calculator.CalculateADX(hourly, c.Opts.ADXPeriod); err != nil {
		log.Printf("[WARN] %s ADX failed: %v, using neutral", ticker.Symbol, err)
		cs.ADX = model.ADXResult{Strength: model.TrendWeak, Direction: model.DirectionNeutral}
	} else {
		cs.ADX = adx
	}

	if ma, err := calculator.CalculateSMA(hourly, c.Opts.FastMAPeriod); err == nil {
		cs.MA50 = calculator.LastValue(ma)
	}
	if ma, err := calculator.CalculateSMA(hourly, c.Opts.SlowMAPeriod); err == nil {
		cs.MA200 = calculator.LastValue(ma)
	}
	if ma, err := calculator.CalculateVWMA(hourly, c.Opts.VWMAPeriod); err == nil {
		cs.VWMA20 = calculator.LastValue(ma)
	}

	if sr, err := calculator.CalculateSupportResistance(hourly, c.Opts.SRLookback); err != nil {
		log.Printf("[WARN] %s support/resistance failed: %v", ticker.Symbol, err)
	} else {
		cs.SR = sr
		cs.Stop = calculator.CalculateStopLoss(sr, model.SideShort, cs.ATR)
	}

	cs.Profile = calculator.CalculateVolumeProfile(hourly, c.Opts.ProfileBins)

	if funding, err := c.Fetcher.FetchFunding(ctx, ticker.Symbol); err != nil {
		log.Printf("[WARN] %s funding unavailable: %v", ticker.Symbol, err)
	} else {
		cs.HourlyFundingPct = calculator.HourlyFundingPct(funding, time.Now())
	}

	pattern := &seasonal.SymbolPattern{
		Symbol:         ticker.Symbol,
		QuoteVolume24h: ticker.QuoteVolume24h,
		Weekly:         seasonal.WeeklyPattern(daily),
		DayHour:        seasonal.DayHourPattern(hourly),
	}
	return cs, pattern, nil
}
