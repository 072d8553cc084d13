package analysis

import (
	"fmt"
	"strings"

	"github.com/stockscope/stockscope/internal/core"
)

// Highlights renders statement figures as one line per item, newline joined.
// Figures are reported in millions. Items the source had no figure for are
// left out rather than shown as zero.
func Highlights(s core.Statements) string {
	var lines []string
	add := func(label string, v *float64) {
		if v == nil {
			return
		}
		lines = append(lines, fmt.Sprintf("%s: $%.2fM", label, *v/1e6))
	}

	add("Revenue", s.Revenue)
	add("Net Income", s.NetIncome)
	add("EBITDA", s.EBITDA)
	add("Total Assets", s.TotalAssets)
	add("Total Liabilities", s.TotalLiabilities)
	if s.TotalAssets != nil && s.TotalLiabilities != nil {
		equity := *s.TotalAssets - *s.TotalLiabilities
		lines = append(lines, fmt.Sprintf("Equity: $%.2fM", equity/1e6))
	}

	return strings.Join(lines, "\n")
}
