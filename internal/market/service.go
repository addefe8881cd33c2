package market

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/quantlab/stockdash/internal/cache"
	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/models"
)

// Service is the facade handlers call for synthesized market data. It owns
// cache-key construction and memoization; synthesis itself is pure.
type Service struct {
	logger   *common.Logger
	cache    cache.Store
	resolver *Resolver
	entropy  Entropy

	seriesTTL time.Duration
	searchTTL time.Duration
	quoteTTL  time.Duration

	// now is stubbed in tests to pin the quote cache bucket.
	now func() time.Time
}

// ServiceOptions configures a market Service.
type ServiceOptions struct {
	SeriesTTL time.Duration
	SearchTTL time.Duration
	QuoteTTL  time.Duration
	Entropy   Entropy
}

// NewService creates a market data service.
func NewService(logger *common.Logger, store cache.Store, resolver *Resolver, opts ServiceOptions) *Service {
	entropy := opts.Entropy
	if entropy == nil {
		entropy = SystemEntropy()
	}
	seriesTTL := opts.SeriesTTL
	if seriesTTL <= 0 {
		seriesTTL = 300 * time.Second
	}
	searchTTL := opts.SearchTTL
	if searchTTL <= 0 {
		searchTTL = 120 * time.Second
	}
	quoteTTL := opts.QuoteTTL
	if quoteTTL <= 0 {
		quoteTTL = 60 * time.Second
	}

	return &Service{
		logger:    logger,
		cache:     store,
		resolver:  resolver,
		entropy:   entropy,
		seriesTTL: seriesTTL,
		searchTTL: searchTTL,
		quoteTTL:  quoteTTL,
		now:       time.Now,
	}
}

// Resolver returns the timeframe resolver backing this service.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// GetStockData resolves the timeframe once, then synthesizes (or serves from
// cache) a daily series per ticker. Tickers are processed concurrently; each
// writes its own slot in the result map, so one ticker cannot corrupt
// another's.
func (s *Service) GetStockData(tickers []string, timeframe models.Timeframe) (map[string][]models.Bar, error) {
	dateRange := s.resolver.ResolveRange(timeframe)

	s.logger.Debug().
		Str("timeframe", string(timeframe)).
		Str("start", dateRange.Start).
		Str("end", dateRange.End).
		Msg("resolved date range")

	results := make(map[string][]models.Bar, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make([]error, len(tickers))

	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()

			// The key carries both the raw timeframe token and the resolved
			// dates; dropping either changes cache-key cardinality.
			key := fmt.Sprintf("%s_%s_%s_%s", ticker, timeframe, dateRange.Start, dateRange.End)

			if cached, ok := s.cache.Get(key); ok {
				if series, ok := cached.([]models.Bar); ok {
					mu.Lock()
					results[ticker] = series
					mu.Unlock()
					return
				}
			}

			series, err := SynthesizeSeries(ticker, dateRange.Start, dateRange.End, s.entropy)
			if err != nil {
				errs[i] = fmt.Errorf("synthesize %s: %w", ticker, err)
				return
			}

			s.cache.Set(key, series, s.seriesTTL)

			mu.Lock()
			results[ticker] = series
			mu.Unlock()
		}(i, ticker)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Search matches the query against the symbol catalog, serving repeated
// queries from cache.
func (s *Service) Search(query string) []models.SearchResult {
	key := "search_" + query

	if cached, ok := s.cache.Get(key); ok {
		if results, ok := cached.([]models.SearchResult); ok {
			return results
		}
	}

	results := SearchCatalog(query)
	s.cache.Set(key, results, s.searchTTL)

	return results
}

// GetQuote returns a snapshot quote for a symbol. The cache key buckets time
// coarsely so distinct calls inside the same window collapse to one cached
// quote, approximating "fresh per minute" together with the short TTL.
func (s *Service) GetQuote(symbol string) models.Quote {
	key := fmt.Sprintf("quote_%s_%s", symbol, quoteBucket(s.now()))

	if cached, ok := s.cache.Get(key); ok {
		if quote, ok := cached.(models.Quote); ok {
			return quote
		}
	}

	quote := SynthesizeQuote(symbol, s.entropy)
	s.cache.Set(key, quote, s.quoteTTL)

	return quote
}

// quoteBucket truncates the millisecond timestamp to its leading 7 digits,
// giving a coarse time window shared by nearby calls.
func quoteBucket(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 7 {
		ms = ms[:7]
	}
	return ms
}
