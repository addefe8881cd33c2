package market

import (
	"math"
	"strings"

	"github.com/quantlab/stockdash/internal/models"
)

// SynthesizeQuote produces a single live-style snapshot for a symbol. Unlike
// series generation, every perturbation draws from the entropy source: a
// quote represents the current moment and is intentionally not reproducible
// call to call. Freshness is bounded by the quote cache window instead.
func SynthesizeQuote(symbol string, entropy Entropy) models.Quote {
	sym := strings.ToUpper(symbol)

	base := basePriceFor(sym, entropy)

	changePercent := (entropy.Float64() - 0.4) * 3
	change := base * (changePercent / 100)
	price := base + change
	open := base * (1 + (entropy.Float64()-0.5)*0.01)
	dayHigh := price * (1 + entropy.Float64()*0.01)
	dayLow := price * (1 - entropy.Float64()*0.01)
	volume := int64(math.Floor(entropy.Float64()*10000000)) + 1000000
	marketCap := int64(math.Floor(price * (entropy.Float64()*1000000000 + 5000000000)))

	name, ok := stockNames[sym]
	if !ok {
		name = sym + " Inc."
	}

	return models.Quote{
		Symbol:                     sym,
		ShortName:                  name,
		RegularMarketPrice:         round2(price),
		RegularMarketChange:        round2(change),
		RegularMarketChangePercent: round2(changePercent),
		RegularMarketOpen:          round2(open),
		RegularMarketDayHigh:       round2(dayHigh),
		RegularMarketDayLow:        round2(dayLow),
		RegularMarketVolume:        volume,
		MarketCap:                  marketCap,
	}
}
