package calculator

import (
	"math"
	"sort"

	"ShortSentinel/internal/model"
)

const (
	// DefaultProfileBins is the bin count used for the dashboard profile.
	DefaultProfileBins = 50

	valueAreaFraction = 0.70
)

// CalculateVolumeProfile bins the candles' high-low ranges into `bins`
// equal-width price buckets and distributes each candle's volume across the
// buckets it overlaps, weighted by the overlapping fraction of its range.
// Degenerate candles (high == low) contribute fully to the single bucket
// containing that price.
//
// The POC is the price of the bucket holding the most volume; the value
// area is the smallest set of buckets, taken in volume-descending order,
// whose cumulative volume reaches 70% of the total.
//
// Returns nil when there is no usable candle data, no traded volume, or a
// degenerate global price range.
func CalculateVolumeProfile(candles []model.Candle, bins int) *model.VolumeProfile {
	if len(candles) == 0 || bins <= 0 {
		return nil
	}

	priceMin := math.Inf(1)
	priceMax := math.Inf(-1)
	for _, c := range candles {
		if c.Low < priceMin {
			priceMin = c.Low
		}
		if c.High > priceMax {
			priceMax = c.High
		}
	}
	if !(priceMax > priceMin) || priceMin <= 0 {
		return nil
	}

	binWidth := (priceMax - priceMin) / float64(bins)
	volumes := make([]float64, bins)

	binIndex := func(price float64) int {
		idx := int((price - priceMin) / binWidth)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		return idx
	}

	var total float64
	for _, c := range candles {
		if c.Volume <= 0 {
			continue
		}
		total += c.Volume
		if c.High == c.Low {
			volumes[binIndex(c.Close)] += c.Volume
			continue
		}
		lo, hi := binIndex(c.Low), binIndex(c.High)
		for b := lo; b <= hi; b++ {
			binLow := priceMin + float64(b)*binWidth
			binHigh := binLow + binWidth
			overlap := math.Min(binHigh, c.High) - math.Max(binLow, c.Low)
			if overlap > 0 {
				volumes[b] += c.Volume * overlap / (c.High - c.Low)
			}
		}
	}
	if total <= 0 {
		return nil
	}

	binPrice := func(b int) float64 {
		return priceMin + (float64(b)+0.5)*binWidth
	}

	order := make([]int, bins)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return volumes[order[i]] > volumes[order[j]] })

	profile := &model.VolumeProfile{POC: binPrice(order[0]), TotalVolume: total}

	target := total * valueAreaFraction
	var cum float64
	vaHigh := math.Inf(-1)
	vaLow := math.Inf(1)
	for _, b := range order {
		cum += volumes[b]
		p := binPrice(b)
		if p > vaHigh {
			vaHigh = p
		}
		if p < vaLow {
			vaLow = p
		}
		if cum >= target {
			break
		}
	}
	profile.ValueAreaHigh = vaHigh
	profile.ValueAreaLow = vaLow
	return profile
}

// CalculateProfileScore maps the distance between price and POC onto a
// short-suitability score in [0,1]. Price above the POC means the market is
// trading above accepted value, which favours the short side.
//
// When ATR is available the distance is measured in ATR multiples and the
// result is damped by a confidence multiplier in extreme volatility
// (ATR above 3% of price: x0.85, above 5%: x0.7). Without ATR a fixed
// percentage-distance band is used instead, so identical inputs can score
// differently depending on ATR availability; that is deliberate graceful
// degradation, applied the same way to every symbol.
func CalculateProfileScore(price float64, profile *model.VolumeProfile, atr float64) float64 {
	if profile == nil || price <= 0 || profile.POC <= 0 {
		return 0.5
	}

	above := price > profile.POC

	band := func(aboveScore, belowScore float64) float64 {
		if above {
			return aboveScore
		}
		return belowScore
	}

	if atr > 0 {
		atrMult := math.Abs(price-profile.POC) / atr
		atrPct := atr / price * 100

		confidence := 1.0
		switch {
		case atrPct > 5:
			confidence = 0.7
		case atrPct > 3:
			confidence = 0.85
		}

		var base float64
		switch {
		case atrMult >= 1.5:
			base = band(0.9, 0.1)
		case atrMult >= 1.0:
			base = band(0.75, 0.25)
		case atrMult >= 0.5:
			base = band(0.6, 0.4)
		default:
			base = 0.5
		}
		return base * confidence
	}

	distPct := math.Abs(price-profile.POC) / profile.POC * 100
	switch {
	case distPct >= 5:
		return band(0.9, 0.1)
	case distPct >= 3:
		return band(0.75, 0.25)
	case distPct >= 1:
		return band(0.6, 0.4)
	default:
		return 0.5
	}
}
