// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code and message but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// WithMessage creates a new error with the same code but a specific
// human-readable message, e.g. a detail string supplied by the backend.
func WithMessage(base *Error, message string) *Error {
	return &Error{
		Code:    base.Code,
		Message: message,
	}
}

// Predefined errors
var (
	// Lookup errors
	ErrTickerRequired = &Error{Code: "TICKER_REQUIRED", Message: "Please enter a stock ticker symbol"}
	ErrLookupInFlight = &Error{Code: "LOOKUP_IN_FLIGHT", Message: "a lookup is already in progress"}
	ErrTickerNotFound = &Error{Code: "TICKER_NOT_FOUND", Message: "ticker not found"}
	ErrNoData         = &Error{Code: "NO_DATA", Message: "no data available"}

	// API client errors
	ErrTransport         = &Error{Code: "TRANSPORT_FAILED", Message: "Failed to fetch stock data"}
	ErrBackend           = &Error{Code: "BACKEND_REJECTED", Message: "Failed to fetch stock data"}
	ErrMalformedResponse = &Error{Code: "MALFORMED_RESPONSE", Message: "stock analysis response is missing required fields"}

	// Market data errors
	ErrSourceFailed  = &Error{Code: "SOURCE_FAILED", Message: "market data source failed"}
	ErrSourceTimeout = &Error{Code: "SOURCE_TIMEOUT", Message: "market data source timeout"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// LLM errors
	ErrLLMFailed  = &Error{Code: "LLM_FAILED", Message: "LLM request failed"}
	ErrLLMTimeout = &Error{Code: "LLM_TIMEOUT", Message: "LLM request timeout"}

	// Report errors
	ErrReportFailed = &Error{Code: "REPORT_FAILED", Message: "report generation failed"}
	ErrJobNotFound  = &Error{Code: "JOB_NOT_FOUND", Message: "job not found"}
)
