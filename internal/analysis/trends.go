package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stockscope/stockscope/internal/core"
)

type trendWindow struct {
	label string
	days  int
}

var trendWindows = []trendWindow{
	{"3-month", 90},
	{"6-month", 180},
	{"12-month", 365},
}

// PriceTrends summarizes closing-price history as one line per observation,
// newline joined. Bars must be in ascending time order. An empty history
// yields an empty string.
func PriceTrends(bars []core.Bar) string {
	if len(bars) == 0 {
		return ""
	}

	asOf := bars[len(bars)-1].Time
	last := bars[len(bars)-1].Close

	var lines []string
	for _, w := range trendWindows {
		idx := firstAtOrAfter(bars, asOf.AddDate(0, 0, -w.days))
		if idx >= len(bars) {
			continue
		}
		past := bars[idx].Close
		if past == 0 {
			continue
		}
		change := (last - past) / past * 100
		lines = append(lines, fmt.Sprintf("%s price change: %.2f%% (Change in closing price over the last %d months)",
			w.label, change, w.days/30))
	}

	hi, lo := 0, 0
	for i, b := range bars {
		if b.Close > bars[hi].Close {
			hi = i
		}
		if b.Close < bars[lo].Close {
			lo = i
		}
	}
	lines = append(lines, fmt.Sprintf("All-time high: $%.2f on %s (Highest closing price in available data)",
		bars[hi].Close, bars[hi].Time.Format("2006-01-02")))
	lines = append(lines, fmt.Sprintf("All-time low: $%.2f on %s (Lowest closing price in available data)",
		bars[lo].Close, bars[lo].Time.Format("2006-01-02")))

	return strings.Join(lines, "\n")
}

// firstAtOrAfter returns the index of the first bar not before t, or
// len(bars) when every bar precedes it.
func firstAtOrAfter(bars []core.Bar, t time.Time) int {
	return sort.Search(len(bars), func(i int) bool {
		return !bars[i].Time.Before(t)
	})
}
