// internal/api/handler/api/report.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/stockscope/stockscope/internal/analysis"
	"github.com/stockscope/stockscope/internal/api/job"
	"github.com/stockscope/stockscope/internal/api/response"
	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/indicator"
	"github.com/stockscope/stockscope/internal/insight"
	"github.com/stockscope/stockscope/internal/metrics"
	"github.com/stockscope/stockscope/internal/report"
	"github.com/stockscope/stockscope/internal/storage/archive"
)

// runTimeout bounds one report job end to end, LLM call included.
const runTimeout = 3 * time.Minute

// ReportSource is the part of the analysis pipeline report jobs use.
type ReportSource interface {
	Analyzer
	History(ctx context.Context, ticker string) ([]core.Bar, error)
}

// Commentator generates the optional analyst commentary section.
type Commentator interface {
	Generate(ctx context.Context, req insight.Request) (*insight.Commentary, error)
}

// ReportHandler handles report job API requests. Jobs run in the
// background; clients poll the job ID returned from Create.
type ReportHandler struct {
	source  ReportSource
	jobs    *job.Store
	archive archive.Storage
	analyst Commentator
	metrics *metrics.Registry
	logger  *zap.Logger

	active atomic.Int64
}

// NewReportHandler creates a new report handler. analyst and reg may be
// nil; a nil analyst produces reports without the commentary section.
func NewReportHandler(source ReportSource, jobs *job.Store, store archive.Storage, analyst Commentator, reg *metrics.Registry, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{
		source:  source,
		jobs:    jobs,
		archive: store,
		analyst: analyst,
		metrics: reg,
		logger:  logger,
	}
}

// Create starts a report job for one ticker and returns it immediately.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	if ticker == "" {
		response.Error(w, core.ErrTickerRequired)
		return
	}

	jb := h.jobs.Create(ticker)
	go h.run(jb.ID, ticker)

	response.JSON(w, http.StatusAccepted, jb)
}

// Status returns the current state of one report job.
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	jb, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, jb)
}

// Jobs lists every report job still held in the store, oldest first.
func (h *ReportHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"jobs": h.jobs.List(),
	})
}

// Download streams the archived HTML document of a completed job.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	jb, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	if jb.Status != job.StatusComplete {
		response.ErrorMessage(w, http.StatusConflict, fmt.Sprintf("report %s is not ready: %s", jb.ID, jb.Status))
		return
	}

	data, err := h.archive.Read(r.Context(), jb.Path)
	if err != nil {
		response.ErrorMessage(w, http.StatusInternalServerError, fmt.Sprintf("reading report %s: %s", jb.ID, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(jb.Path)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Archived lists every archived report key for one ticker.
func (h *ReportHandler) Archived(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	if ticker == "" {
		response.Error(w, core.ErrTickerRequired)
		return
	}

	keys, err := h.archive.List(r.Context(), ticker+"/")
	if err != nil {
		response.ErrorMessage(w, http.StatusInternalServerError, fmt.Sprintf("listing reports for %s: %s", ticker, err))
		return
	}
	if keys == nil {
		keys = []string{}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"ticker":  ticker,
		"reports": keys,
	})
}

// run executes one report job: analysis, indicators, optional commentary,
// render, archive. Job store updates for evicted jobs are dropped.
func (h *ReportHandler) run(id, ticker string) {
	h.setActive(h.active.Add(1))
	defer func() { h.setActive(h.active.Add(-1)) }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	h.progress(id, 10)

	result, err := h.source.Analyze(ctx, ticker)
	if err != nil {
		h.fail(id, ticker, err, time.Since(start))
		return
	}
	h.progress(id, 40)

	bars, err := h.source.History(ctx, ticker)
	if err != nil {
		h.fail(id, ticker, err, time.Since(start))
		return
	}

	var snap *indicator.Snapshot
	var trends string
	if len(bars) > 0 {
		highs, lows, closes := analysis.Series(bars)
		s := indicator.Compute(highs, lows, closes)
		snap = &s
		trends = analysis.PriceTrends(bars)
	}
	h.progress(id, 60)

	var commentary string
	if h.analyst != nil {
		c, err := h.analyst.Generate(ctx, insight.Request{
			Ticker:     ticker,
			Analysis:   result,
			Indicators: snap,
			Trends:     trends,
		})
		if err != nil {
			// The report is still useful without commentary.
			h.logger.Warn("commentary generation failed",
				zap.String("ticker", ticker),
				zap.Error(err))
		} else {
			commentary = c.Text
			if h.metrics != nil {
				h.metrics.RecordLLMTokens(c.Provider, c.Usage.InputTokens, c.Usage.OutputTokens)
			}
		}
	}
	h.progress(id, 80)

	now := time.Now()
	doc := report.Build(report.Data{
		Ticker:      ticker,
		GeneratedAt: now,
		Analysis:    result,
		Indicators:  snap,
		Trends:      trends,
		Commentary:  commentary,
	})
	key := report.Filename(ticker, now)
	if err := h.archive.Write(ctx, key, []byte(doc)); err != nil {
		h.fail(id, ticker, core.WrapError(core.ErrReportFailed, err), time.Since(start))
		return
	}

	elapsed := time.Since(start)
	h.update(id, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Progress = 100
		j.Path = key
	})
	if h.metrics != nil {
		h.metrics.RecordReport("complete", elapsed.Seconds())
	}
	h.logger.Info("report archived",
		zap.String("ticker", ticker),
		zap.String("path", key),
		zap.Duration("elapsed", elapsed))
}

func (h *ReportHandler) fail(id, ticker string, cause error, elapsed time.Duration) {
	h.logger.Warn("report job failed",
		zap.String("ticker", ticker),
		zap.String("job_id", id),
		zap.Error(cause))
	if h.metrics != nil {
		h.metrics.RecordReport("failed", elapsed.Seconds())
	}
	h.update(id, func(j *job.Job) {
		j.Status = job.StatusFailed
		j.Error = cause.Error()
	})
}

func (h *ReportHandler) progress(id string, pct int) {
	h.update(id, func(j *job.Job) {
		j.Status = job.StatusRunning
		j.Progress = pct
	})
}

func (h *ReportHandler) update(id string, fn func(*job.Job)) {
	if err := h.jobs.Update(id, fn); err != nil {
		h.logger.Debug("job update dropped", zap.String("job_id", id), zap.Error(err))
	}
}

func (h *ReportHandler) setActive(n int64) {
	if h.metrics != nil {
		h.metrics.SetReportJobsActive(int(n))
	}
}
