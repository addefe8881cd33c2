package models

import "time"

// Timeframe selects the look-back window for a stock-data request.
type Timeframe string

// Supported timeframe tokens. Unrecognized values resolve like OneMonth.
const (
	OneDay     Timeframe = "1D"
	OneWeek    Timeframe = "1W"
	OneMonth   Timeframe = "1M"
	ThreeMonth Timeframe = "3M"
	OneYear    Timeframe = "1Y"
	YearToDate Timeframe = "YTD"
	MonthToDay Timeframe = "MTD"
	Custom     Timeframe = "custom"
)

// DateRange is an inclusive start/end pair of calendar dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Bar is one trading day of synthetic OHLCV data.
// AdjClose mirrors Close; there are no corporate actions in generated data.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjClose"`
	Volume   int64     `json:"volume"`
}

// Quote is a single-instant synthetic snapshot for one symbol. Field names
// follow the Yahoo-style shape the dashboard client expects.
type Quote struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	MarketCap                  int64   `json:"marketCap"`
}

// SearchResult is one catalog entry returned by symbol search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}
