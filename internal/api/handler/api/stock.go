// internal/api/handler/api/stock.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stockscope/stockscope/internal/api/response"
	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/metrics"
)

// Analyzer is the part of the analysis pipeline the stock endpoint uses.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*core.AnalysisResult, error)
}

// StockHandler handles stock analysis API requests.
type StockHandler struct {
	analyzer Analyzer
	metrics  *metrics.Registry
}

// NewStockHandler creates a new stock handler. reg may be nil.
func NewStockHandler(analyzer Analyzer, reg *metrics.Registry) *StockHandler {
	return &StockHandler{analyzer: analyzer, metrics: reg}
}

// Welcome greets clients probing the API root.
func (h *StockHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Stock Analysis API",
	})
}

// Get returns the full analysis payload for one ticker.
func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	if ticker == "" {
		response.Error(w, core.ErrTickerRequired)
		return
	}

	start := time.Now()
	result, err := h.analyzer.Analyze(r.Context(), ticker)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		if errors.Is(err, core.ErrTickerNotFound) || errors.Is(err, core.ErrNoData) {
			h.record("not_found", elapsed)
			response.ErrorMessage(w, http.StatusNotFound, fmt.Sprintf("Data for %s not found", ticker))
			return
		}
		h.record("error", elapsed)
		response.ErrorMessage(w, http.StatusInternalServerError, fmt.Sprintf("Error analyzing %s: %s", ticker, err))
		return
	}

	h.record("ok", elapsed)
	response.JSON(w, http.StatusOK, result)
}

func (h *StockHandler) record(outcome string, seconds float64) {
	if h.metrics != nil {
		h.metrics.RecordLookup(outcome, seconds)
	}
}
