package indicator

import "math"

// Standard volatility indicator parameters.
const (
	BollingerPeriod = 20
	BollingerWidth  = 2.0
	ATRPeriod       = 14
)

// Bollinger calculates Bollinger Bands: an SMA middle band with upper and
// lower bands k sample standard deviations away. All three slices have
// len(prices) - period + 1 values aligned with each other.
func Bollinger(prices []float64, period int, k float64) (upper, middle, lower []float64) {
	middle = SMA(prices, period)
	if len(middle) == 0 {
		return []float64{}, []float64{}, []float64{}
	}

	upper = make([]float64, len(middle))
	lower = make([]float64, len(middle))
	for i := range middle {
		window := prices[i : i+period]
		var sq float64
		for _, p := range window {
			d := p - middle[i]
			sq += d * d
		}
		// Sample standard deviation, matching the usual charting convention.
		std := math.Sqrt(sq / float64(period-1))
		upper[i] = middle[i] + k*std
		lower[i] = middle[i] - k*std
	}
	return upper, middle, lower
}

// ATR calculates the Average True Range over period as a rolling mean of the
// true range. Requires at least period+1 bars; returns len(highs) - period
// values. The three input slices must have equal length.
func ATR(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if n != len(highs) || n != len(lows) || n <= period {
		return []float64{}
	}

	tr := make([]float64, n-1)
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i-1] = math.Max(hl, math.Max(hc, lc))
	}

	return SMA(tr, period)
}
