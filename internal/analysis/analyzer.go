// Package analysis assembles market data into the stock analysis payload:
// company header, ordered ratio table, statement highlights, and the price
// trend summary used by reports.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/market"
)

// historySpan is how far back Analyzer pulls daily bars. Trend windows top
// out at twelve months, so two years leaves room for the all-time scan.
const historySpan = 2

// Analyzer turns raw source data into analysis results.
type Analyzer struct {
	source market.Source
	logger *zap.Logger
}

// New creates an Analyzer backed by the given market source.
func New(source market.Source, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{source: source, logger: logger}
}

// Analyze fetches the company profile for ticker and assembles the full
// analysis payload. Source errors pass through unchanged so callers can
// distinguish unknown tickers from upstream failures.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*core.AnalysisResult, error) {
	profile, err := a.source.Profile(ctx, ticker)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("assembling analysis",
		zap.String("ticker", profile.Ticker),
		zap.String("source", a.source.Name()))

	return &core.AnalysisResult{
		CompanyInfo:         CompanyInfo(profile),
		FinancialRatios:     Ratios(profile),
		FinancialHighlights: Highlights(profile.Statements),
	}, nil
}

// History returns up to two years of daily bars for ticker, oldest first.
func (a *Analyzer) History(ctx context.Context, ticker string) ([]core.Bar, error) {
	end := time.Now()
	return a.source.History(ctx, ticker, end.AddDate(-historySpan, 0, 0), end)
}

// Series splits bars into the aligned high/low/close slices the indicator
// package computes over.
func Series(bars []core.Bar) (highs, lows, closes []float64) {
	highs = make([]float64, len(bars))
	lows = make([]float64, len(bars))
	closes = make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
	}
	return highs, lows, closes
}

// CompanyInfo maps profile identity fields onto the payload header. Missing
// sector, industry, or price all render as "N/A".
func CompanyInfo(p *core.CompanyProfile) core.CompanyInfo {
	price := core.NA()
	if p.Price != nil {
		price = core.Number(*p.Price)
	}
	info := core.CompanyInfo{
		CompanyName:  p.Name,
		Sector:       p.Sector,
		Industry:     p.Industry,
		CurrentPrice: price,
	}
	if info.CompanyName == "" {
		info.CompanyName = p.Ticker
	}
	if info.Sector == "" {
		info.Sector = "N/A"
	}
	if info.Industry == "" {
		info.Industry = "N/A"
	}
	return info
}
