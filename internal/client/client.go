// Package client implements the HTTP client for the stock analysis API.
package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockscope/stockscope/internal/core"
)

const (
	defaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is read when
	// looking for a detail message.
	maxErrorBody = 64 << 10
)

// Client talks to a running stock analysis API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client for the API at baseURL. A nil httpClient gets a
// default with a request timeout; a nil logger disables logging.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// analysisPayload mirrors the API response. Pointer fields distinguish a
// missing key from a zero value when validating the shape.
type analysisPayload struct {
	CompanyInfo         *core.CompanyInfo `json:"company_info"`
	FinancialRatios     *core.RatioList   `json:"financial_ratios"`
	FinancialHighlights *string           `json:"financial_highlights"`
}

// GetStockAnalysis fetches the analysis payload for ticker. The ticker is
// trimmed and uppercased before the request. Each call issues exactly one
// GET; there are no retries.
//
// Failures map onto core sentinels: network problems return ErrTransport,
// non-2xx responses return ErrBackend carrying the server's detail message
// when one is present, and 2xx bodies that do not decode into the expected
// shape return ErrMalformedResponse.
func (c *Client) GetStockAnalysis(ctx context.Context, ticker string) (*core.AnalysisResult, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, core.ErrTickerRequired
	}

	endpoint := c.baseURL + "/api/stock/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("stock analysis request failed",
			zap.String("ticker", symbol),
			zap.Error(err))
		return nil, core.WrapError(core.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp, symbol)
	}

	var payload analysisPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("stock analysis response did not decode",
			zap.String("ticker", symbol),
			zap.Error(err))
		return nil, core.WrapError(core.ErrMalformedResponse, err)
	}
	if payload.CompanyInfo == nil || payload.FinancialRatios == nil || payload.FinancialHighlights == nil {
		return nil, core.ErrMalformedResponse
	}

	return &core.AnalysisResult{
		CompanyInfo:         *payload.CompanyInfo,
		FinancialRatios:     *payload.FinancialRatios,
		FinancialHighlights: *payload.FinancialHighlights,
	}, nil
}

// errorFromResponse turns a non-2xx response into a backend error, keeping
// the server's detail message when the body carries one.
func (c *Client) errorFromResponse(resp *http.Response, symbol string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var e struct {
			Detail string `json:"detail"`
		}
		if jsonErr := json.Unmarshal(body, &e); jsonErr == nil && e.Detail != "" {
			c.logger.Debug("backend rejected lookup",
				zap.String("ticker", symbol),
				zap.Int("status", resp.StatusCode),
				zap.String("detail", e.Detail))
			return core.WithMessage(core.ErrBackend, e.Detail)
		}
	}

	c.logger.Warn("backend error without detail",
		zap.String("ticker", symbol),
		zap.Int("status", resp.StatusCode))
	return core.ErrBackend
}
