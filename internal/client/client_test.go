package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stockscope/stockscope/internal/core"
)

const applePayload = `{
	"company_info": {
		"company_name": "Apple Inc.",
		"sector": "Technology",
		"industry": "Consumer Electronics",
		"current_price": 150.25
	},
	"financial_ratios": {"P/E Ratio": 28.4, "ROE": 0.35, "Interest Coverage": "N/A"},
	"financial_highlights": "Revenue grew 5%\nMargins stable"
}`

func coreMessage(t *testing.T, err error) string {
	t.Helper()
	var ce *core.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *core.Error, got %T: %v", err, err)
	}
	return ce.Message
}

func TestGetStockAnalysis(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/stock/AAPL" {
			t.Errorf("path = %s, want /api/stock/AAPL", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(applePayload))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil, nil)
	result, err := c.GetStockAnalysis(context.Background(), "  aapl ")
	if err != nil {
		t.Fatalf("GetStockAnalysis() error = %v", err)
	}

	if result.CompanyInfo.CompanyName != "Apple Inc." {
		t.Errorf("company name = %q", result.CompanyInfo.CompanyName)
	}
	if got := result.CompanyInfo.CurrentPrice.String(); got != "150.25" {
		t.Errorf("current price = %q, want 150.25", got)
	}
	if result.FinancialHighlights != "Revenue grew 5%\nMargins stable" {
		t.Errorf("highlights = %q", result.FinancialHighlights)
	}

	if len(result.FinancialRatios) != 3 {
		t.Fatalf("ratio count = %d, want 3", len(result.FinancialRatios))
	}
	if result.FinancialRatios[0].Name != "P/E Ratio" || result.FinancialRatios[1].Name != "ROE" {
		t.Errorf("ratio order = %q, %q", result.FinancialRatios[0].Name, result.FinancialRatios[1].Name)
	}
	if got := result.FinancialRatios[0].Value.String(); got != "28.4" {
		t.Errorf("P/E = %q, want 28.4", got)
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("request count = %d, want 1", n)
	}
}

func TestGetStockAnalysis_BackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Ticker not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	_, err := c.GetStockAnalysis(context.Background(), "ZZZZ")
	if !errors.Is(err, core.ErrBackend) {
		t.Fatalf("error = %v, want ErrBackend", err)
	}
	if msg := coreMessage(t, err); msg != "Ticker not found" {
		t.Errorf("message = %q, want the server detail verbatim", msg)
	}
}

func TestGetStockAnalysis_BackendWithoutDetail(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	_, err := c.GetStockAnalysis(context.Background(), "AAPL")
	if !errors.Is(err, core.ErrBackend) {
		t.Fatalf("error = %v, want ErrBackend", err)
	}
	if msg := coreMessage(t, err); msg != "Failed to fetch stock data" {
		t.Errorf("message = %q, want the generic fallback", msg)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("request count = %d, want 1 (no retries)", n)
	}
}

func TestGetStockAnalysis_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil, nil)
	_, err := c.GetStockAnalysis(context.Background(), "AAPL")
	if !errors.Is(err, core.ErrTransport) {
		t.Fatalf("error = %v, want ErrTransport", err)
	}
	if msg := coreMessage(t, err); msg != "Failed to fetch stock data" {
		t.Errorf("message = %q, want the generic fallback", msg)
	}
}

func TestGetStockAnalysis_MalformedResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "<html>hello</html>"},
		{"empty object", "{}"},
		{"missing highlights", `{"company_info": {"company_name": "A", "sector": "B", "industry": "C", "current_price": 1}, "financial_ratios": {}}`},
		{"missing ratios", `{"company_info": {"company_name": "A", "sector": "B", "industry": "C", "current_price": 1}, "financial_highlights": "x"}`},
		{"ratios not an object", `{"company_info": {}, "financial_ratios": [1, 2], "financial_highlights": "x"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, nil, nil)
			_, err := c.GetStockAnalysis(context.Background(), "AAPL")
			if !errors.Is(err, core.ErrMalformedResponse) {
				t.Fatalf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestGetStockAnalysis_EmptyTicker(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	for _, ticker := range []string{"", "   ", "\t\n"} {
		_, err := c.GetStockAnalysis(context.Background(), ticker)
		if !errors.Is(err, core.ErrTickerRequired) {
			t.Errorf("ticker %q: error = %v, want ErrTickerRequired", ticker, err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("request count = %d, want 0", n)
	}
}
