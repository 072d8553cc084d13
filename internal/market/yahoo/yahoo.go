// Package yahoo implements a market data source backed by the public Yahoo
// Finance endpoints: quoteSummary for company profiles and chart for daily
// history.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/stockscope/stockscope/internal/core"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"

	// Yahoo rejects the default Go user agent.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

	summaryModules = "assetProfile,price,summaryDetail,financialData,defaultKeyStatistics,incomeStatementHistory,balanceSheetHistory"
)

// validTicker matches symbols like AAPL, MSFT, BRK.B, 0700.HK
var validTicker = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateTicker checks if a ticker has valid format
func validateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker cannot be empty")
	}
	if len(ticker) > 20 {
		return fmt.Errorf("ticker too long: %s", ticker)
	}
	if !validTicker.MatchString(ticker) {
		return fmt.Errorf("invalid ticker format: %s", ticker)
	}
	return nil
}

// Config holds Yahoo source settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Source implements the Yahoo Finance market data source.
type Source struct {
	client  *http.Client
	baseURL string
}

// New creates a new Yahoo source.
func New(cfg Config) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Source{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (s *Source) Name() string {
	return "yahoo"
}

// Profile fetches the quoteSummary modules for a ticker and maps them onto a
// company profile. Missing figures stay nil.
func (s *Source) Profile(ctx context.Context, ticker string) (*core.CompanyProfile, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, core.WrapError(core.ErrTickerNotFound, err)
	}

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		s.baseURL, url.PathEscape(ticker), url.QueryEscape(summaryModules))

	var result summaryResponse
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	if e := result.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, core.WrapError(core.ErrTickerNotFound, fmt.Errorf("yahoo: %s", e.Description))
		}
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description))
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, core.WrapError(core.ErrTickerNotFound, fmt.Errorf("no data for ticker: %s", ticker))
	}

	r := result.QuoteSummary.Result[0]

	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	if name == "" {
		name = ticker
	}

	profile := &core.CompanyProfile{
		Ticker:   ticker,
		Name:     name,
		Sector:   r.AssetProfile.Sector,
		Industry: r.AssetProfile.Industry,
		Price:    r.FinancialData.CurrentPrice.ptr(),
		Metrics: core.ProfileMetrics{
			TrailingPE:      r.SummaryDetail.TrailingPE.ptr(),
			ForwardPE:       r.SummaryDetail.ForwardPE.ptr(),
			PriceToBook:     r.KeyStatistics.PriceToBook.ptr(),
			PriceToSales:    r.SummaryDetail.PriceToSales.ptr(),
			EVToEBITDA:      r.KeyStatistics.EnterpriseToEbitda.ptr(),
			GrossMargin:     r.FinancialData.GrossMargins.ptr(),
			OperatingMargin: r.FinancialData.OperatingMargins.ptr(),
			ProfitMargin:    r.FinancialData.ProfitMargins.ptr(),
			ReturnOnEquity:  r.FinancialData.ReturnOnEquity.ptr(),
			ReturnOnAssets:  r.FinancialData.ReturnOnAssets.ptr(),
			CurrentRatio:    r.FinancialData.CurrentRatio.ptr(),
			QuickRatio:      r.FinancialData.QuickRatio.ptr(),
			DebtToEquity:    r.FinancialData.DebtToEquity.ptr(),
			DividendYield:   r.SummaryDetail.DividendYield.ptr(),
			PayoutRatio:     r.SummaryDetail.PayoutRatio.ptr(),
			RevenueGrowth:   r.FinancialData.RevenueGrowth.ptr(),
			EarningsGrowth:  r.FinancialData.EarningsGrowth.ptr(),
		},
		Statements: core.Statements{
			EBITDA: r.FinancialData.EBITDA.ptr(),
		},
	}

	if stmts := r.IncomeHistory.Statements; len(stmts) > 0 {
		profile.Statements.Revenue = stmts[0].TotalRevenue.ptr()
		profile.Statements.NetIncome = stmts[0].NetIncome.ptr()
	}
	if stmts := r.BalanceHistory.Statements; len(stmts) > 0 {
		profile.Statements.TotalAssets = stmts[0].TotalAssets.ptr()
		profile.Statements.TotalLiabilities = stmts[0].TotalLiabilities.ptr()
	}

	return profile, nil
}

// History fetches daily bars from the chart endpoint. Bars with missing
// fields are skipped.
func (s *Source) History(ctx context.Context, ticker string, start, end time.Time) ([]core.Bar, error) {
	if err := validateTicker(ticker); err != nil {
		return nil, core.WrapError(core.ErrTickerNotFound, err)
	}

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		s.baseURL, url.PathEscape(ticker), start.Unix(), end.Unix())

	var result chartResponse
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}

	if e := result.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, core.WrapError(core.ErrTickerNotFound, fmt.Errorf("yahoo: %s", e.Description))
		}
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description))
	}
	if len(result.Chart.Result) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no history for ticker: %s", ticker))
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no quote data for ticker: %s", ticker))
	}
	quotes := r.Indicators.Quote[0]

	bars := make([]core.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Open) || quotes.Open[i] == nil || quotes.High[i] == nil ||
			quotes.Low[i] == nil || quotes.Close[i] == nil {
			continue // Skip missing data
		}
		bar := core.Bar{
			Time:  time.Unix(int64(ts), 0),
			Open:  *quotes.Open[i],
			High:  *quotes.High[i],
			Low:   *quotes.Low[i],
			Close: *quotes.Close[i],
		}
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			bar.Volume = int64(*quotes.Volume[i])
		}
		// Halted days come through with a zero close.
		if !bar.IsValid() {
			continue
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func (s *Source) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return core.WrapError(core.ErrSourceFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.WrapError(core.ErrTickerNotFound, fmt.Errorf("yahoo status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return core.WrapError(core.ErrSourceFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrSourceFailed, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// Yahoo API response types. Numeric fields arrive as {"raw": n, "fmt": "..."}
// objects.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

func (v rawValue) ptr() *float64 {
	return v.Raw
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type summaryResult struct {
	AssetProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"assetProfile"`
	Price struct {
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE    rawValue `json:"trailingPE"`
		ForwardPE     rawValue `json:"forwardPE"`
		PriceToSales  rawValue `json:"priceToSalesTrailing12Months"`
		DividendYield rawValue `json:"dividendYield"`
		PayoutRatio   rawValue `json:"payoutRatio"`
	} `json:"summaryDetail"`
	FinancialData struct {
		CurrentPrice     rawValue `json:"currentPrice"`
		GrossMargins     rawValue `json:"grossMargins"`
		OperatingMargins rawValue `json:"operatingMargins"`
		ProfitMargins    rawValue `json:"profitMargins"`
		ReturnOnEquity   rawValue `json:"returnOnEquity"`
		ReturnOnAssets   rawValue `json:"returnOnAssets"`
		CurrentRatio     rawValue `json:"currentRatio"`
		QuickRatio       rawValue `json:"quickRatio"`
		DebtToEquity     rawValue `json:"debtToEquity"`
		RevenueGrowth    rawValue `json:"revenueGrowth"`
		EarningsGrowth   rawValue `json:"earningsGrowth"`
		EBITDA           rawValue `json:"ebitda"`
	} `json:"financialData"`
	KeyStatistics struct {
		PriceToBook        rawValue `json:"priceToBook"`
		EnterpriseToEbitda rawValue `json:"enterpriseToEbitda"`
	} `json:"defaultKeyStatistics"`
	IncomeHistory struct {
		Statements []struct {
			TotalRevenue rawValue `json:"totalRevenue"`
			NetIncome    rawValue `json:"netIncome"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceHistory struct {
		Statements []struct {
			TotalAssets      rawValue `json:"totalAssets"`
			TotalLiabilities rawValue `json:"totalLiab"`
		} `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}
