package market

import (
	"strings"

	"github.com/quantlab/stockdash/internal/models"
)

// defaultSearchResults is how many catalog entries are returned when a
// search matches nothing. Returning a small default list instead of an
// empty one keeps the dashboard's search dropdown populated.
const defaultSearchResults = 3

// popularStocks is the static symbol catalog backing search.
var popularStocks = []models.SearchResult{
	{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "TSLA", Name: "Tesla, Inc.", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Exchange: "NASDAQ", Type: "EQUITY"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Exchange: "NYSE", Type: "EQUITY"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Exchange: "NYSE", Type: "EQUITY"},
	{Symbol: "V", Name: "Visa Inc.", Exchange: "NYSE", Type: "EQUITY"},
}

// basePrices pins the walk starting price for well-known tickers. Tickers
// outside this table get a pseudo-random base in [100,300).
var basePrices = map[string]float64{
	"AAPL":  145.85,
	"MSFT":  265.30,
	"GOOGL": 105.55,
	"AMZN":  98.75,
	"META":  232.80,
	"TSLA":  192.50,
}

// stockNames maps known symbols to display names for quotes.
var stockNames = map[string]string{
	"AAPL":  "Apple Inc.",
	"MSFT":  "Microsoft Corporation",
	"GOOGL": "Alphabet Inc.",
	"AMZN":  "Amazon.com Inc.",
	"META":  "Meta Platforms Inc.",
	"TSLA":  "Tesla, Inc.",
	"NVDA":  "NVIDIA Corporation",
	"JPM":   "JPMorgan Chase & Co.",
	"JNJ":   "Johnson & Johnson",
	"V":     "Visa Inc.",
}

// basePriceFor returns the walk starting price for a ticker, drawing from
// entropy for tickers outside the table.
func basePriceFor(ticker string, entropy Entropy) float64 {
	if base, ok := basePrices[strings.ToUpper(ticker)]; ok {
		return base
	}
	return 100 + entropy.Float64()*200
}

// SearchCatalog returns catalog entries whose symbol or name contains the
// query, case-insensitive. When nothing matches it falls back to the first
// few catalog entries rather than an empty list.
func SearchCatalog(query string) []models.SearchResult {
	q := strings.ToLower(query)

	var results []models.SearchResult
	for _, stock := range popularStocks {
		if strings.Contains(strings.ToLower(stock.Symbol), q) ||
			strings.Contains(strings.ToLower(stock.Name), q) {
			results = append(results, stock)
		}
	}

	if len(results) == 0 {
		results = append(results, popularStocks[:defaultSearchResults]...)
	}

	return results
}
