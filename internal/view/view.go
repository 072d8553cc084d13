// Package view holds the presentation state for a stock lookup: one model
// per viewer session, moving between idle, loading, success, and failure as
// lookups run.
package view

import (
	"errors"
	"strings"
	"sync"

	"github.com/stockscope/stockscope/internal/core"
)

// State is the lookup lifecycle position.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateFailure State = "failure"
)

// Model is the lookup state machine. All methods are safe for concurrent
// use; only one lookup can be in flight at a time.
type Model struct {
	mu      sync.Mutex
	state   State
	ticker  string
	result  *core.AnalysisResult
	message string
}

// NewModel returns a model in the idle state.
func NewModel() *Model {
	return &Model{state: StateIdle}
}

// Submit validates raw input and moves the model into the loading state,
// returning the normalized ticker the lookup should use. While a lookup is
// in flight it returns ErrLookupInFlight and leaves the state untouched.
// Blank input moves straight to failure without starting a lookup.
func (m *Model) Submit(raw string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLoading {
		return "", core.ErrLookupInFlight
	}

	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		m.state = StateFailure
		m.ticker = ""
		m.result = nil
		m.message = core.ErrTickerRequired.Message
		return "", core.ErrTickerRequired
	}

	m.state = StateLoading
	m.ticker = symbol
	m.result = nil
	m.message = ""
	return symbol, nil
}

// Resolve completes the in-flight lookup with either a result or an error.
// Calls made outside the loading state are dropped, so a stale response
// cannot clobber a newer submission.
func (m *Model) Resolve(result *core.AnalysisResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLoading {
		return
	}
	if err != nil {
		m.state = StateFailure
		m.result = nil
		m.message = failureMessage(err)
		return
	}
	m.state = StateSuccess
	m.result = result
	m.message = ""
}

// Snapshot is a point-in-time copy of the model for rendering.
type Snapshot struct {
	State   State
	Ticker  string
	Result  *core.AnalysisResult
	Message string
}

// Snapshot returns the current view state.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:   m.state,
		Ticker:  m.ticker,
		Result:  m.result,
		Message: m.message,
	}
}

// failureMessage flattens an error into the message shown to the viewer.
// Anything that is not a core error gets the generic fetch message.
func failureMessage(err error) string {
	var ce *core.Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return core.ErrTransport.Message
}
