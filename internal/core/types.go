package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Scalar holds a single value from an analysis payload. The backend emits a
// number where data is available and a string such as "N/A" where it is not,
// so both forms must survive a round trip with their literal text intact.
type Scalar struct {
	text     string
	isString bool
}

// Number returns a Scalar carrying a numeric value. The text form uses the
// shortest representation that round-trips, so 28.4 renders as "28.4".
func Number(v float64) Scalar {
	return Scalar{text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Text returns a Scalar carrying a string value.
func Text(s string) Scalar {
	return Scalar{text: s, isString: true}
}

// NA is the placeholder for metrics with no available data.
func NA() Scalar {
	return Text("N/A")
}

// String returns the display form of the value.
func (s Scalar) String() string {
	return s.text
}

// Float returns the numeric value and whether the scalar holds one.
func (s Scalar) Float() (float64, bool) {
	if s.isString {
		return 0, false
	}
	f, err := strconv.ParseFloat(s.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsText reports whether the scalar holds a string rather than a number.
func (s Scalar) IsText() bool {
	return s.isString
}

// MarshalJSON writes the value back the way it arrived: strings quoted,
// numbers as their literal text.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isString {
		return json.Marshal(s.text)
	}
	if s.text == "" {
		return []byte("null"), nil
	}
	return []byte(s.text), nil
}

// UnmarshalJSON keeps the literal token text so that numbers render exactly
// as the backend wrote them.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty scalar value")
	}
	if data[0] == '"' {
		s.isString = true
		return json.Unmarshal(data, &s.text)
	}
	s.isString = false
	s.text = string(data)
	return nil
}

// Ratio is one named metric in an analysis payload.
type Ratio struct {
	Name  string
	Value Scalar
}

// RatioList is an ordered collection of named metrics. It marshals to a JSON
// object whose keys appear in insertion order, and it preserves the backend's
// key order when decoding. Display iterates the same order.
type RatioList []Ratio

// Add appends a metric to the list.
func (l *RatioList) Add(name string, value Scalar) {
	*l = append(*l, Ratio{Name: name, Value: value})
}

// Get returns the value for name and whether it is present.
func (l RatioList) Get(name string) (Scalar, bool) {
	for _, r := range l {
		if r.Name == name {
			return r.Value, true
		}
	}
	return Scalar{}, false
}

// MarshalJSON writes the list as a JSON object in insertion order.
func (l RatioList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON walks the object token by token so key order survives. A
// plain map would lose it.
func (l *RatioList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("financial ratios: expected object, got %v", tok)
	}
	out := RatioList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("financial ratios: expected string key, got %v", keyTok)
		}
		var val Scalar
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("financial ratios: value for %q: %w", key, err)
		}
		out = append(out, Ratio{Name: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

// CompanyInfo identifies the company behind a ticker.
type CompanyInfo struct {
	CompanyName  string `json:"company_name"`
	Sector       string `json:"sector"`
	Industry     string `json:"industry"`
	CurrentPrice Scalar `json:"current_price"`
}

// AnalysisResult is the payload served for one ticker: company identity, an
// ordered ratio table, and a preformatted highlights block rendered verbatim.
type AnalysisResult struct {
	CompanyInfo         CompanyInfo `json:"company_info"`
	FinancialRatios     RatioList   `json:"financial_ratios"`
	FinancialHighlights string      `json:"financial_highlights"`
}

// CompanyProfile is everything a market source reports about a ticker.
// Optional metrics are pointers; nil means the source had no figure.
type CompanyProfile struct {
	Ticker     string
	Name       string
	Sector     string
	Industry   string
	Price      *float64
	Metrics    ProfileMetrics
	Statements Statements
}

// ProfileMetrics carries the raw inputs for the ratio table.
type ProfileMetrics struct {
	TrailingPE       *float64
	ForwardPE        *float64
	PriceToBook      *float64
	PriceToSales     *float64
	EVToEBITDA       *float64
	GrossMargin      *float64
	OperatingMargin  *float64
	ProfitMargin     *float64
	ReturnOnEquity   *float64
	ReturnOnAssets   *float64
	CurrentRatio     *float64
	QuickRatio       *float64
	DebtToEquity     *float64
	InterestCoverage *float64
	DividendYield    *float64
	PayoutRatio      *float64
	RevenueGrowth    *float64
	EarningsGrowth   *float64
}

// Statements carries the most recent annual statement figures, in dollars.
type Statements struct {
	Revenue          *float64
	NetIncome        *float64
	EBITDA           *float64
	TotalAssets      *float64
	TotalLiabilities *float64
}

// Bar is one daily candlestick from a market source.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// IsValid checks that the bar carries a usable close.
func (b Bar) IsValid() bool {
	return !b.Time.IsZero() && b.Close > 0
}

// Float64 returns a pointer to v. Handy for building profiles in tests and
// fixture data.
func Float64(v float64) *float64 {
	return &v
}
