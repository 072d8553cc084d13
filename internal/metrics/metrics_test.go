package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	// Should have go runtime metrics at minimum
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("GET", "GET /api/stock/{ticker}", 200, 0.05)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected http_requests_total metric")
	}
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/test", tt.status, 0.01)

			mfs, err := reg.Gather()
			if err != nil {
				t.Fatalf("gather failed: %v", err)
			}

			found := false
			for _, mf := range mfs {
				if mf.GetName() == "http_requests_total" {
					for _, m := range mf.GetMetric() {
						for _, label := range m.GetLabel() {
							if label.GetName() == "status" && label.GetValue() == tt.expected {
								found = true
							}
						}
					}
				}
			}
			if !found {
				t.Errorf("expected status label %s for status code %d", tt.expected, tt.status)
			}
		})
	}
}

func TestRegistry_InFlight(t *testing.T) {
	reg := NewRegistry()

	reg.InFlightInc()
	reg.InFlightInc()
	reg.InFlightDec()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_in_flight" {
			found = true
			for _, m := range mf.GetMetric() {
				if m.GetGauge().GetValue() != 1 {
					t.Errorf("expected in-flight gauge to be 1, got %v", m.GetGauge().GetValue())
				}
			}
		}
	}
	if !found {
		t.Error("expected http_requests_in_flight metric")
	}
}

func TestRegistry_DurationHistogram(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("POST", "/api/stock/AAPL/report", 202, 0.123)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "http_request_duration_seconds" {
			found = true
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist.GetSampleCount() != 1 {
					t.Errorf("expected sample count 1, got %d", hist.GetSampleCount())
				}
				if hist.GetSampleSum() < 0.12 || hist.GetSampleSum() > 0.13 {
					t.Errorf("expected sample sum ~0.123, got %v", hist.GetSampleSum())
				}
			}
		}
	}
	if !found {
		t.Error("expected http_request_duration_seconds metric")
	}
}

func TestRegistry_RecordLookup(t *testing.T) {
	reg := NewRegistry()

	reg.RecordLookup("ok", 0.3)
	reg.RecordLookup("ok", 0.1)
	reg.RecordLookup("not_found", 0.05)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		switch mf.GetName() {
		case "stockscope_lookups_total":
			for _, m := range mf.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetName() != "outcome" {
						continue
					}
					switch label.GetValue() {
					case "ok":
						if m.GetCounter().GetValue() != 2 {
							t.Errorf("expected 2 ok lookups, got %v", m.GetCounter().GetValue())
						}
					case "not_found":
						if m.GetCounter().GetValue() != 1 {
							t.Errorf("expected 1 not_found lookup, got %v", m.GetCounter().GetValue())
						}
					}
				}
			}
		case "stockscope_lookup_duration_seconds":
			for _, m := range mf.GetMetric() {
				if m.GetHistogram().GetSampleCount() != 3 {
					t.Errorf("expected 3 duration samples, got %d", m.GetHistogram().GetSampleCount())
				}
			}
		}
	}
}

func TestRegistry_RecordReport(t *testing.T) {
	reg := NewRegistry()

	reg.RecordReport("complete", 12.5)
	reg.RecordReport("failed", 1.2)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() == "stockscope_reports_total" {
			if len(mf.GetMetric()) != 2 {
				t.Errorf("expected 2 status series, got %d", len(mf.GetMetric()))
			}
		}
	}
}

func TestRegistry_RecordLLMTokens(t *testing.T) {
	reg := NewRegistry()

	reg.RecordLLMTokens("claude", 1200, 800)
	reg.RecordLLMTokens("claude", 300, 200)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() != "stockscope_llm_tokens_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var direction string
			for _, label := range m.GetLabel() {
				if label.GetName() == "direction" {
					direction = label.GetValue()
				}
			}
			switch direction {
			case "input":
				if m.GetCounter().GetValue() != 1500 {
					t.Errorf("expected 1500 input tokens, got %v", m.GetCounter().GetValue())
				}
			case "output":
				if m.GetCounter().GetValue() != 1000 {
					t.Errorf("expected 1000 output tokens, got %v", m.GetCounter().GetValue())
				}
			}
		}
	}
}

func TestRegistry_SetReportJobsActive(t *testing.T) {
	reg := NewRegistry()

	reg.SetReportJobsActive(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	for _, mf := range mfs {
		if mf.GetName() == "stockscope_report_jobs_active" {
			for _, m := range mf.GetMetric() {
				if m.GetGauge().GetValue() != 3 {
					t.Errorf("expected 3 active jobs, got %v", m.GetGauge().GetValue())
				}
			}
		}
	}
}

// Ensure the registry implements prometheus.Gatherer interface
func TestRegistry_ImplementsGatherer(t *testing.T) {
	reg := NewRegistry()
	var _ prometheus.Gatherer = reg
}
