// Package report renders a full stock analysis as one self-contained HTML
// document, suitable for archiving and for serving back from job results.
package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/indicator"
)

// Data is everything a report can include. Indicators, Trends, and
// Commentary are optional; their sections are omitted when empty.
type Data struct {
	Ticker      string
	GeneratedAt time.Time
	Analysis    *core.AnalysisResult
	Indicators  *indicator.Snapshot
	Trends      string
	Commentary  string
}

const reportStyle = `<style>
body{font-family:Arial,Helvetica,sans-serif;max-width:900px;margin:20px auto;padding:0 16px}
table{border-collapse:collapse;width:100%;margin-bottom:20px}
td,th{border:1px solid #ccc;padding:6px;text-align:right}
th{background:#f2f2f2;text-align:center}
td.left,th.left{text-align:left}
pre{background:#fafafa;border:1px solid #ddd;padding:10px;white-space:pre-wrap}
.small{font-size:0.9em;color:#666}
.summary{margin-top:20px;padding:10px;border:1px solid #ddd;background:#fafafa}
h3{margin-top:28px}
</style>`

// Build renders data as a standalone HTML page. Every dynamic value is
// escaped, including LLM commentary.
func Build(d Data) string {
	var sb strings.Builder

	sb.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	sb.WriteString("<title>" + html.EscapeString(d.Ticker) + " - Stock Analysis Report</title>")
	sb.WriteString(reportStyle)
	sb.WriteString("</head><body>")

	sb.WriteString("<h2>" + html.EscapeString(d.Ticker) + " - Stock Analysis Report</h2>")
	if !d.GeneratedAt.IsZero() {
		sb.WriteString("<p class='small'>Generated " + d.GeneratedAt.UTC().Format("2006-01-02 15:04 MST") + "</p>")
	}

	if d.Analysis != nil {
		writeCompanyPanel(&sb, d.Analysis.CompanyInfo)
		writeHighlights(&sb, d.Analysis.FinancialHighlights)
		writeRatios(&sb, d.Analysis.FinancialRatios)
	}
	writeIndicators(&sb, d.Indicators)
	writeTrends(&sb, d.Trends)
	writeCommentary(&sb, d.Commentary)

	sb.WriteString("</body></html>")
	return sb.String()
}

func writeCompanyPanel(sb *strings.Builder, info core.CompanyInfo) {
	sb.WriteString("<h3>" + html.EscapeString(info.CompanyName) + "</h3>")
	sb.WriteString("<table><tbody>")
	sb.WriteString("<tr><th class='left'>Sector</th><td>" + html.EscapeString(info.Sector) + "</td></tr>")
	sb.WriteString("<tr><th class='left'>Industry</th><td>" + html.EscapeString(info.Industry) + "</td></tr>")
	sb.WriteString("<tr><th class='left'>Current Price</th><td>$" + html.EscapeString(info.CurrentPrice.String()) + "</td></tr>")
	sb.WriteString("</tbody></table>")
}

func writeHighlights(sb *strings.Builder, highlights string) {
	if highlights == "" {
		return
	}
	sb.WriteString("<h3>Financial Highlights</h3>")
	sb.WriteString("<pre>" + html.EscapeString(highlights) + "</pre>")
}

func writeRatios(sb *strings.Builder, ratios core.RatioList) {
	if len(ratios) == 0 {
		return
	}
	sb.WriteString("<h3>Financial Ratios</h3>")
	sb.WriteString("<table><thead><tr><th class='left'>Ratio</th><th>Value</th></tr></thead><tbody>")
	for _, r := range ratios {
		sb.WriteString("<tr><td class='left'>" + html.EscapeString(r.Name) + "</td><td>" + html.EscapeString(r.Value.String()) + "</td></tr>")
	}
	sb.WriteString("</tbody></table>")
}

func writeIndicators(sb *strings.Builder, snap *indicator.Snapshot) {
	if snap == nil {
		return
	}
	sb.WriteString("<h3>Technical Indicators (Most Recent)</h3>")
	sb.WriteString("<table><thead><tr><th class='left'>Indicator</th><th>Value</th></tr></thead><tbody>")
	for _, row := range snap.Rows() {
		value := "N/A"
		if row.Value != nil {
			value = fmt.Sprintf("%.2f", *row.Value)
		}
		sb.WriteString("<tr><td class='left'>" + html.EscapeString(row.Name) + "</td><td>" + value + "</td></tr>")
	}
	sb.WriteString("</tbody></table>")
}

func writeTrends(sb *strings.Builder, trends string) {
	if trends == "" {
		return
	}
	sb.WriteString("<h3>Price Trends</h3>")
	sb.WriteString("<pre>" + html.EscapeString(trends) + "</pre>")
}

func writeCommentary(sb *strings.Builder, commentary string) {
	if commentary == "" {
		return
	}
	sb.WriteString("<h3>Analyst Commentary</h3>")
	sb.WriteString("<div class='summary'><pre>" + html.EscapeString(commentary) + "</pre></div>")
}

// Filename returns the archive key for a report, namespaced by ticker.
func Filename(ticker string, t time.Time) string {
	return fmt.Sprintf("%s/%s_analysis_%s.html", ticker, ticker, t.UTC().Format("20060102_150405"))
}
