package view_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/view"
)

func appleResult() *core.AnalysisResult {
	var ratios core.RatioList
	ratios.Add("P/E Ratio", core.Number(28.4))
	ratios.Add("ROE", core.Number(0.35))
	return &core.AnalysisResult{
		CompanyInfo: core.CompanyInfo{
			CompanyName:  "Apple Inc.",
			Sector:       "Technology",
			Industry:     "Consumer Electronics",
			CurrentPrice: core.Number(150.25),
		},
		FinancialRatios:     ratios,
		FinancialHighlights: "Revenue grew 5%\nMargins stable",
	}
}

// stubFetcher counts calls and can block until released to simulate a slow
// backend.
type stubFetcher struct {
	mu      sync.Mutex
	calls   int
	result  *core.AnalysisResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *stubFetcher) GetStockAnalysis(ctx context.Context, ticker string) (*core.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestModel_InitialState(t *testing.T) {
	m := view.NewModel()
	snap := m.Snapshot()

	assert.Equal(t, view.StateIdle, snap.State)
	assert.Empty(t, snap.Ticker)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Message)
}

func TestModel_SubmitNormalizesTicker(t *testing.T) {
	m := view.NewModel()

	symbol, err := m.Submit("  aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol)

	snap := m.Snapshot()
	assert.Equal(t, view.StateLoading, snap.State)
	assert.Equal(t, "AAPL", snap.Ticker)
	assert.Nil(t, snap.Result)
}

func TestModel_SubmitBlankInput(t *testing.T) {
	m := view.NewModel()

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := m.Submit(raw)
		assert.True(t, errors.Is(err, core.ErrTickerRequired), "input %q", raw)

		snap := m.Snapshot()
		assert.Equal(t, view.StateFailure, snap.State)
		assert.Equal(t, "Please enter a stock ticker symbol", snap.Message)
		assert.Nil(t, snap.Result)
	}
}

func TestModel_SubmitWhileLoading(t *testing.T) {
	m := view.NewModel()

	_, err := m.Submit("AAPL")
	require.NoError(t, err)

	_, err = m.Submit("MSFT")
	assert.True(t, errors.Is(err, core.ErrLookupInFlight))

	// The in-flight lookup is untouched.
	snap := m.Snapshot()
	assert.Equal(t, view.StateLoading, snap.State)
	assert.Equal(t, "AAPL", snap.Ticker)
}

func TestModel_ResolveSuccess(t *testing.T) {
	m := view.NewModel()
	_, err := m.Submit("AAPL")
	require.NoError(t, err)

	m.Resolve(appleResult(), nil)

	snap := m.Snapshot()
	assert.Equal(t, view.StateSuccess, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "Apple Inc.", snap.Result.CompanyInfo.CompanyName)
	assert.Empty(t, snap.Message)
}

func TestModel_ResolveFailure(t *testing.T) {
	m := view.NewModel()
	_, err := m.Submit("ZZZZ")
	require.NoError(t, err)

	m.Resolve(nil, core.WithMessage(core.ErrBackend, "Ticker not found"))

	snap := m.Snapshot()
	assert.Equal(t, view.StateFailure, snap.State)
	assert.Equal(t, "Ticker not found", snap.Message)
	assert.Nil(t, snap.Result)
}

func TestModel_ResolveFlattensUnknownErrors(t *testing.T) {
	m := view.NewModel()
	_, err := m.Submit("AAPL")
	require.NoError(t, err)

	m.Resolve(nil, errors.New("connection reset by peer"))

	snap := m.Snapshot()
	assert.Equal(t, view.StateFailure, snap.State)
	assert.Equal(t, "Failed to fetch stock data", snap.Message)
}

func TestModel_ResolveOutsideLoadingIsDropped(t *testing.T) {
	m := view.NewModel()

	m.Resolve(appleResult(), nil)
	assert.Equal(t, view.StateIdle, m.Snapshot().State)

	_, err := m.Submit("AAPL")
	require.NoError(t, err)
	m.Resolve(appleResult(), nil)
	require.Equal(t, view.StateSuccess, m.Snapshot().State)

	// A stale error response after success changes nothing.
	m.Resolve(nil, core.ErrBackend)
	snap := m.Snapshot()
	assert.Equal(t, view.StateSuccess, snap.State)
	assert.NotNil(t, snap.Result)
}

func TestModel_FailureRecovery(t *testing.T) {
	m := view.NewModel()

	_, err := m.Submit("")
	require.Error(t, err)
	require.Equal(t, view.StateFailure, m.Snapshot().State)

	symbol, err := m.Submit("msft")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", symbol)

	snap := m.Snapshot()
	assert.Equal(t, view.StateLoading, snap.State)
	assert.Empty(t, snap.Message, "old failure message should be cleared")
}

func TestModel_SuccessThenBlankSubmit(t *testing.T) {
	m := view.NewModel()
	_, err := m.Submit("AAPL")
	require.NoError(t, err)
	m.Resolve(appleResult(), nil)

	_, err = m.Submit("   ")
	require.Error(t, err)

	snap := m.Snapshot()
	assert.Equal(t, view.StateFailure, snap.State)
	assert.Nil(t, snap.Result, "previous result is discarded")
	assert.Equal(t, "Please enter a stock ticker symbol", snap.Message)
}

func TestSession_Lookup(t *testing.T) {
	f := &stubFetcher{result: appleResult()}
	s := view.NewSession(f)

	snap := s.Lookup(context.Background(), "aapl")

	assert.Equal(t, view.StateSuccess, snap.State)
	assert.Equal(t, "AAPL", snap.Ticker)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "Apple Inc.", snap.Result.CompanyInfo.CompanyName)
	assert.Equal(t, 1, f.callCount())
}

func TestSession_LookupFailure(t *testing.T) {
	f := &stubFetcher{err: core.WithMessage(core.ErrBackend, "Ticker not found")}
	s := view.NewSession(f)

	snap := s.Lookup(context.Background(), "ZZZZ")

	assert.Equal(t, view.StateFailure, snap.State)
	assert.Equal(t, "Ticker not found", snap.Message)
}

func TestSession_LookupBlankSkipsFetch(t *testing.T) {
	f := &stubFetcher{result: appleResult()}
	s := view.NewSession(f)

	snap := s.Lookup(context.Background(), "  ")

	assert.Equal(t, view.StateFailure, snap.State)
	assert.Equal(t, "Please enter a stock ticker symbol", snap.Message)
	assert.Equal(t, 0, f.callCount())
}

func TestSession_LookupWhileInFlight(t *testing.T) {
	f := &stubFetcher{
		result:  appleResult(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := view.NewSession(f)

	done := make(chan view.Snapshot, 1)
	go func() {
		done <- s.Lookup(context.Background(), "AAPL")
	}()
	<-f.started // first lookup is now loading inside the fetcher

	snap := s.Lookup(context.Background(), "MSFT")
	assert.Equal(t, view.StateLoading, snap.State)
	assert.Equal(t, "AAPL", snap.Ticker, "second submit must not displace the in-flight lookup")
	assert.Equal(t, 1, f.callCount())

	close(f.release)
	final := <-done
	assert.Equal(t, view.StateSuccess, final.State)
	assert.Equal(t, "AAPL", final.Ticker)
}
