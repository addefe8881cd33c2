package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/market"
	"github.com/quantlab/stockdash/internal/models"
)

// StockHandler serves synthesized market data: batch series, symbol search,
// and point quotes.
type StockHandler struct {
	logger *common.Logger
	market *market.Service
}

// NewStockHandler creates a stock data handler.
func NewStockHandler(logger *common.Logger, svc *market.Service) *StockHandler {
	return &StockHandler{
		logger: logger,
		market: svc,
	}
}

// HandleData handles GET /api/stocks/data?tickers=A,B,C&timeframe=1M.
func (h *StockHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	tickers := r.URL.Query().Get("tickers")
	if tickers == "" {
		WriteFail(w, http.StatusBadRequest, "No stock tickers provided")
		return
	}

	timeframe := models.Timeframe(r.URL.Query().Get("timeframe"))
	tickerList := strings.Split(tickers, ",")

	data, err := h.market.GetStockData(tickerList, timeframe)
	if err != nil {
		h.logger.Error().Err(err).Str("tickers", tickers).Msg("stock data request failed")
		WriteError(w, http.StatusInternalServerError, "Failed to fetch stock data. Please try again later.")
		return
	}

	WriteSuccess(w, http.StatusOK, data)
}

// HandleSearch handles GET /api/stocks/search?query=...
func (h *StockHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		WriteFail(w, http.StatusBadRequest, "No search query provided")
		return
	}

	WriteSuccess(w, http.StatusOK, h.market.Search(query))
}

// HandleQuote handles GET /api/stocks/quote/{symbol}.
//
// This endpoint deliberately degrades instead of failing: if anything panics
// mid-request it still answers 200 with a freshly synthesized quote, because
// the client renders it as a live price tile where an error state is worse
// than a best-effort number.
func (h *StockHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := r.PathValue("symbol")
	if symbol == "" {
		WriteFail(w, http.StatusBadRequest, "No stock symbol provided")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().Str("symbol", symbol).Str("panic", fmt.Sprintf("%v", rec)).Msg("quote request failed, serving best-effort quote")
			WriteSuccess(w, http.StatusOK, market.SynthesizeQuote(symbol, market.SystemEntropy()))
		}
	}()

	WriteSuccess(w, http.StatusOK, h.market.GetQuote(symbol))
}
