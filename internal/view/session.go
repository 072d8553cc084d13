package view

import (
	"context"

	"github.com/stockscope/stockscope/internal/core"
)

// Fetcher is the slice of the API client a session needs.
type Fetcher interface {
	GetStockAnalysis(ctx context.Context, ticker string) (*core.AnalysisResult, error)
}

// Session ties a view model to the API client and runs whole lookup cycles.
type Session struct {
	model   *Model
	fetcher Fetcher
}

// NewSession creates a session that fetches through the given client.
func NewSession(fetcher Fetcher) *Session {
	return &Session{model: NewModel(), fetcher: fetcher}
}

// Lookup runs one submit/resolve cycle for raw input and returns the view
// state afterwards. A rejected submission (blank input, lookup already in
// flight) returns without touching the network.
func (s *Session) Lookup(ctx context.Context, raw string) Snapshot {
	symbol, err := s.model.Submit(raw)
	if err != nil {
		return s.model.Snapshot()
	}

	result, err := s.fetcher.GetStockAnalysis(ctx, symbol)
	s.model.Resolve(result, err)
	return s.model.Snapshot()
}

// Snapshot returns the current view state without running a lookup.
func (s *Session) Snapshot() Snapshot {
	return s.model.Snapshot()
}
