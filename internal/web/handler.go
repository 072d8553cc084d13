// Package web serves the browser frontend. Pages are rendered server side
// from the lookup session state; the analysis data itself comes from the
// API over HTTP.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/stockscope/stockscope/internal/view"
)

//go:embed templates/*
var templateFS embed.FS

// HomeData feeds the home page template.
type HomeData struct {
	Title   string
	State   view.State
	Ticker  string
	Message string
	// Header is the "Company Name (TICKER)" line shown on success.
	Header string
	Result *resultPanel
}

// resultPanel is the success payload flattened for the template.
type resultPanel struct {
	Sector     string
	Industry   string
	Price      string
	Highlights string
	Ratios     []ratioRow
}

type ratioRow struct {
	Name  string
	Value string
}

// Handler renders the viewer pages over one shared lookup session.
type Handler struct {
	home    *template.Template
	session *view.Session
}

// NewHandler creates a web handler with templates loaded from the given
// directory. If templatesDir is empty, it falls back to embedded templates.
func NewHandler(templatesDir string, session *view.Session) (*Handler, error) {
	var tmpl *template.Template
	var err error

	if templatesDir != "" {
		tmpl, err = template.ParseFiles(
			filepath.Join(templatesDir, "layout.html"),
			filepath.Join(templatesDir, "home.html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parsing templates: %w", err)
		}
	} else {
		subFS, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("accessing embedded templates: %w", err)
		}
		tmpl, err = template.ParseFS(subFS, "layout.html", "home.html")
		if err != nil {
			return nil, fmt.Errorf("parsing embedded templates: %w", err)
		}
	}

	return &Handler{home: tmpl, session: session}, nil
}

// Home renders the current lookup state.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.session.Snapshot())
}

// Lookup runs one analysis lookup from the submitted form and renders the
// outcome.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Lookup(r.Context(), r.FormValue("ticker"))
	h.render(w, snap)
}

func (h *Handler) render(w http.ResponseWriter, snap view.Snapshot) {
	data := HomeData{
		Title:   "Stock Analysis",
		State:   snap.State,
		Ticker:  snap.Ticker,
		Message: snap.Message,
	}
	if snap.Result != nil {
		info := snap.Result.CompanyInfo
		data.Header = fmt.Sprintf("%s (%s)", info.CompanyName, snap.Ticker)
		rows := make([]ratioRow, 0, len(snap.Result.FinancialRatios))
		for _, ratio := range snap.Result.FinancialRatios {
			rows = append(rows, ratioRow{Name: ratio.Name, Value: ratio.Value.String()})
		}
		data.Result = &resultPanel{
			Sector:     info.Sector,
			Industry:   info.Industry,
			Price:      info.CurrentPrice.String(),
			Highlights: snap.Result.FinancialHighlights,
			Ratios:     rows,
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.home.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
