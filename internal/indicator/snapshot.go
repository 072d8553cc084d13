// internal/indicator/snapshot.go
package indicator

// Snapshot carries the most recent value of each tracked indicator. Nil
// fields mean the series was too short for that indicator.
type Snapshot struct {
	Close         float64
	MA20          *float64
	MA50          *float64
	MA200         *float64
	RSI           *float64
	MACD          *float64
	MACDSignal    *float64
	MACDHistogram *float64
	ATR           *float64
	BBUpper       *float64
	BBMiddle      *float64
	BBLower       *float64
}

// Compute derives the latest indicator values from aligned high/low/close
// series ordered oldest first.
func Compute(highs, lows, closes []float64) Snapshot {
	snap := Snapshot{}
	if len(closes) == 0 {
		return snap
	}
	snap.Close = closes[len(closes)-1]

	snap.MA20 = last(SMA(closes, 20))
	snap.MA50 = last(SMA(closes, 50))
	snap.MA200 = last(SMA(closes, 200))
	snap.RSI = last(RSI(closes, RSIPeriod))

	line, signal, hist := MACD(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	snap.MACD = last(line)
	snap.MACDSignal = last(signal)
	snap.MACDHistogram = last(hist)

	snap.ATR = last(ATR(highs, lows, closes, ATRPeriod))

	upper, middle, lower := Bollinger(closes, BollingerPeriod, BollingerWidth)
	snap.BBUpper = last(upper)
	snap.BBMiddle = last(middle)
	snap.BBLower = last(lower)

	return snap
}

// Row is one labeled indicator value for display.
type Row struct {
	Name  string
	Value *float64
}

// Rows returns the snapshot as labeled values in display order.
func (s Snapshot) Rows() []Row {
	c := s.Close
	return []Row{
		{"Close", &c},
		{"MA20", s.MA20},
		{"MA50", s.MA50},
		{"MA200", s.MA200},
		{"RSI", s.RSI},
		{"MACD", s.MACD},
		{"MACD_Signal", s.MACDSignal},
		{"MACD_Histogram", s.MACDHistogram},
		{"ATR", s.ATR},
		{"BB_Upper", s.BBUpper},
		{"BB_Middle", s.BBMiddle},
		{"BB_Lower", s.BBLower},
	}
}

func last(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := values[len(values)-1]
	return &v
}
