package market

import (
	"fmt"
	"math"
	"time"

	"github.com/quantlab/stockdash/internal/models"
)

// dailyVolatility bounds the per-day close-to-close move of the walk.
const dailyVolatility = 0.02

// SynthesizeSeries generates a daily OHLCV series for one ticker over the
// inclusive [startDate, endDate] range (YYYY-MM-DD), skipping weekends.
//
// The walk is continuous: each day's close becomes the next day's open. All
// draws come from seededRandom with the seed advanced by one per trading day
// plus fixed fractional offsets for the high/low/volume sub-draws, so for a
// ticker with a pinned base price the output is identical on every call.
func SynthesizeSeries(ticker, startDate, endDate string, entropy Entropy) ([]models.Bar, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	seed := tickerSeed(ticker)
	price := basePriceFor(ticker, entropy)

	var bars []models.Bar
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		seed++
		changePercent := (seededRandom(seed) - 0.48) * dailyVolatility

		open := price
		closing := open * (1 + changePercent)
		high := math.Max(open, closing) * (1 + seededRandom(seed+0.1)*0.01)
		low := math.Min(open, closing) * (1 - seededRandom(seed+0.2)*0.01)
		volume := int64(math.Floor(seededRandom(seed+0.3)*10000000)) + 1000000

		bars = append(bars, models.Bar{
			Date:     day,
			Open:     round2(open),
			High:     round2(high),
			Low:      round2(low),
			Close:    round2(closing),
			AdjClose: round2(closing),
			Volume:   volume,
		})

		// Unrounded close carries into the next open; rounding only the
		// serialized fields keeps the walk continuous.
		price = closing
	}

	return bars, nil
}

// round2 rounds to 2 fraction digits, matching price serialization.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
