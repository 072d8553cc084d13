package indicator

// Standard MACD periods.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD calculates Moving Average Convergence Divergence: the MACD line
// (fast EMA minus slow EMA), its signal line (EMA of the MACD line) and the
// histogram (line minus signal). The three slices are aligned with each
// other; the first entry corresponds to the first bar where the signal line
// is defined. Returns empty slices when there is not enough data.
func MACD(prices []float64, fast, slow, signalPeriod int) (line, signal, histogram []float64) {
	if len(prices) < slow+signalPeriod-1 {
		return []float64{}, []float64{}, []float64{}
	}

	emaFast := EMA(prices, fast)
	emaSlow := EMA(prices, slow)

	// emaFast starts at price index fast-1, emaSlow at slow-1. Walk the
	// overlap so both are defined.
	full := make([]float64, 0, len(emaSlow))
	offset := slow - fast
	for i := range emaSlow {
		full = append(full, emaFast[i+offset]-emaSlow[i])
	}

	signal = EMA(full, signalPeriod)
	line = full[len(full)-len(signal):]

	histogram = make([]float64, len(signal))
	for i := range signal {
		histogram[i] = line[i] - signal[i]
	}
	return line, signal, histogram
}
