// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockscope/stockscope/internal/core"
)

// Detail is the error response body. Clients parse this shape for failure
// messages, so error handlers must always produce it.
type Detail struct {
	Detail string `json:"detail"`
}

// JSON writes data as the response body.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response, deriving status and detail from err.
func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusFor(err), Detail{Detail: MessageFor(err)})
}

// ErrorMessage writes an error response with an explicit status and detail.
func ErrorMessage(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, Detail{Detail: detail})
}

// StatusFor maps an error onto its HTTP status.
func StatusFor(err error) int {
	var coreErr *core.Error
	if !errors.As(err, &coreErr) {
		return http.StatusInternalServerError
	}
	switch coreErr.Code {
	case core.ErrTickerNotFound.Code, core.ErrJobNotFound.Code, core.ErrNoData.Code:
		return http.StatusNotFound
	case core.ErrTickerRequired.Code, core.ErrConfigInvalid.Code, core.ErrConfigMissing.Code:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor flattens an error into the detail string.
func MessageFor(err error) string {
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		return coreErr.Message
	}
	return "Internal Server Error"
}
