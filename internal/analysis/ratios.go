package analysis

import (
	"math"

	"github.com/stockscope/stockscope/internal/core"
)

// Ratios builds the ordered ratio table for a profile. Row order here is
// display order. Metrics the source had no figure for render as "N/A".
func Ratios(p *core.CompanyProfile) core.RatioList {
	m := p.Metrics

	var list core.RatioList
	add := func(name string, v *float64) {
		if v == nil {
			list.Add(name, core.NA())
			return
		}
		list.Add(name, core.Number(*v))
	}

	add("P/E Ratio", m.TrailingPE)
	add("Forward P/E", m.ForwardPE)
	add("P/B Ratio", m.PriceToBook)
	add("P/S Ratio", m.PriceToSales)
	add("EV/EBITDA", m.EVToEBITDA)
	list.Add("PEG Ratio", pegRatio(m.TrailingPE, m.EarningsGrowth))
	add("Gross Margin", m.GrossMargin)
	add("Operating Margin", m.OperatingMargin)
	add("Net Profit Margin", m.ProfitMargin)
	add("ROE", m.ReturnOnEquity)
	add("ROA", m.ReturnOnAssets)
	add("Current Ratio", m.CurrentRatio)
	add("Quick Ratio", m.QuickRatio)
	add("Debt-to-Equity", m.DebtToEquity)
	add("Interest Coverage", m.InterestCoverage)
	add("Dividend Yield", m.DividendYield)
	add("Payout Ratio", m.PayoutRatio)
	add("Revenue Growth (YoY)", m.RevenueGrowth)
	add("Earnings Growth (YoY)", m.EarningsGrowth)

	return list
}

// pegRatio divides P/E by earnings growth in percent, the usual shortcut
// when no published PEG is available.
func pegRatio(pe, growth *float64) core.Scalar {
	if pe == nil || growth == nil || *growth == 0 {
		return core.NA()
	}
	return core.Number(round2(*pe / (*growth * 100)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
