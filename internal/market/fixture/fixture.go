// Package fixture provides a deterministic market data source with canned
// company data. It backs demo mode and lets the server run without network
// access.
package fixture

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stockscope/stockscope/internal/core"
)

// Source serves canned profiles and synthesized price history.
type Source struct {
	profiles map[string]core.CompanyProfile
}

// New creates a fixture source with the built-in companies.
func New() *Source {
	return &Source{profiles: builtinProfiles()}
}

func (s *Source) Name() string {
	return "fixture"
}

// Profile returns the canned profile for a known ticker.
func (s *Source) Profile(ctx context.Context, ticker string) (*core.CompanyProfile, error) {
	p, ok := s.profiles[strings.ToUpper(ticker)]
	if !ok {
		return nil, core.WrapError(core.ErrTickerNotFound, fmt.Errorf("fixture has no data for %s", ticker))
	}
	out := p
	return &out, nil
}

// History synthesizes a deterministic daily series: a gentle drift with a
// seasonal wiggle around the profile price. Unknown tickers miss like
// Profile does.
func (s *Source) History(ctx context.Context, ticker string, start, end time.Time) ([]core.Bar, error) {
	p, ok := s.profiles[strings.ToUpper(ticker)]
	if !ok {
		return nil, core.WrapError(core.ErrTickerNotFound, fmt.Errorf("fixture has no data for %s", ticker))
	}

	base := 100.0
	if p.Price != nil {
		base = *p.Price
	}

	var bars []core.Bar
	day := 0
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		drift := base * 0.0003 * float64(day)
		wiggle := base * 0.02 * math.Sin(float64(day)/9)
		px := base*0.85 + drift + wiggle
		bars = append(bars, core.Bar{
			Time:   t,
			Open:   px * 0.998,
			High:   px * 1.012,
			Low:    px * 0.989,
			Close:  px,
			Volume: 1_000_000 + int64(day%7)*50_000,
		})
		day++
	}

	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("empty range for %s", ticker))
	}
	return bars, nil
}

func builtinProfiles() map[string]core.CompanyProfile {
	f := core.Float64
	return map[string]core.CompanyProfile{
		"AAPL": {
			Ticker:   "AAPL",
			Name:     "Apple Inc.",
			Sector:   "Technology",
			Industry: "Consumer Electronics",
			Price:    f(150.25),
			Metrics: core.ProfileMetrics{
				TrailingPE:      f(28.4),
				ForwardPE:       f(26.1),
				PriceToBook:     f(44.5),
				PriceToSales:    f(7.3),
				EVToEBITDA:      f(21.3),
				GrossMargin:     f(0.43),
				OperatingMargin: f(0.297),
				ProfitMargin:    f(0.253),
				ReturnOnEquity:  f(0.35),
				ReturnOnAssets:  f(0.21),
				CurrentRatio:    f(0.94),
				QuickRatio:      f(0.88),
				DebtToEquity:    f(176.3),
				DividendYield:   f(0.0055),
				PayoutRatio:     f(0.155),
				RevenueGrowth:   f(0.05),
				EarningsGrowth:  f(0.071),
			},
			Statements: core.Statements{
				Revenue:          f(394328000000),
				NetIncome:        f(99803000000),
				EBITDA:           f(130541000000),
				TotalAssets:      f(352755000000),
				TotalLiabilities: f(302083000000),
			},
		},
		"MSFT": {
			Ticker:   "MSFT",
			Name:     "Microsoft Corporation",
			Sector:   "Technology",
			Industry: "Software - Infrastructure",
			Price:    f(415.5),
			Metrics: core.ProfileMetrics{
				TrailingPE:     f(35.1),
				PriceToBook:    f(12.2),
				ReturnOnEquity: f(0.39),
				DividendYield:  f(0.0072),
				RevenueGrowth:  f(0.157),
			},
			Statements: core.Statements{
				Revenue:     f(245122000000),
				NetIncome:   f(88136000000),
				TotalAssets: f(512163000000),
			},
		},
		// Thin on purpose: exercises the N/A paths end to end.
		"NKLA": {
			Ticker:   "NKLA",
			Name:     "Nikola Corporation",
			Sector:   "Industrials",
			Industry: "Farm & Heavy Construction Machinery",
			Price:    f(7.36),
		},
	}
}
