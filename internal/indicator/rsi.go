package indicator

// RSIPeriod is the standard RSI lookback.
const RSIPeriod = 14

// RSI calculates the Relative Strength Index using simple rolling averages
// of gains and losses over the period. Returns len(prices) - period values,
// the first corresponding to price index period. A window with no losses
// yields 100.
func RSI(prices []float64, period int) []float64 {
	if len(prices) <= period {
		return []float64{}
	}

	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	result := make([]float64, 0, len(prices)-period)

	var sumGain, sumLoss float64
	for i := 0; i < period; i++ {
		sumGain += gains[i]
		sumLoss += losses[i]
	}
	result = append(result, rsiValue(sumGain, sumLoss))

	for i := period; i < len(gains); i++ {
		sumGain += gains[i] - gains[i-period]
		sumLoss += losses[i] - losses[i-period]
		result = append(result, rsiValue(sumGain, sumLoss))
	}

	return result
}

func rsiValue(sumGain, sumLoss float64) float64 {
	if sumLoss == 0 {
		return 100
	}
	rs := sumGain / sumLoss
	return 100 - 100/(1+rs)
}
