// Package market implements the synthetic stock-data engine: a deterministic
// per-ticker random walk for daily OHLCV series, live-style quote snapshots,
// and symbol search over a static catalog.
package market

import (
	"math"
	"math/rand/v2"
)

// seededRandom maps a seed to a value in [0,1). It is a pure function of its
// input: the same seed always yields the same value, which is what makes a
// generated series reproducible across processes and runs.
func seededRandom(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// tickerSeed derives the walk seed from the ticker text: the sum of its byte
// values. Two tickers with equal sums share a walk; that mapping is kept
// as-is because changing it would break series reproducibility.
func tickerSeed(ticker string) float64 {
	var sum int
	for i := 0; i < len(ticker); i++ {
		sum += int(ticker[i])
	}
	return float64(sum)
}

// Entropy is the single injection point for non-reproducible randomness:
// unknown-ticker base prices and the quote path. Deterministic tests
// substitute a fixed source; series generation for known tickers never
// touches it.
type Entropy interface {
	Float64() float64
}

// systemEntropy draws from the process-wide PRNG.
type systemEntropy struct{}

func (systemEntropy) Float64() float64 { return rand.Float64() }

// SystemEntropy returns the default entropy source.
func SystemEntropy() Entropy { return systemEntropy{} }
