package indicator

import "testing"

func TestMACD_FlatSeries(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 10
	}

	line, signal, hist := MACD(prices, 3, 5, 2)

	// Flat prices: both EMAs sit on the price, so everything is zero.
	wantLen := 35
	if len(line) != wantLen || len(signal) != wantLen || len(hist) != wantLen {
		t.Fatalf("lengths = %d/%d/%d, want %d", len(line), len(signal), len(hist), wantLen)
	}
	for i := range line {
		if line[i] != 0 || signal[i] != 0 || hist[i] != 0 {
			t.Fatalf("index %d: line=%f signal=%f hist=%f, want zeros", i, line[i], signal[i], hist[i])
		}
	}
}

func TestMACD_RisingSeries(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = float64(i + 1)
	}

	line, signal, hist := MACD(prices, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
	if len(line) == 0 {
		t.Fatal("expected values for 60 bars")
	}

	// In a steady uptrend the fast EMA tracks price more closely than the
	// slow EMA, so the MACD line stays positive.
	if last := line[len(line)-1]; last <= 0 {
		t.Errorf("expected positive MACD in uptrend, got %f", last)
	}
	if len(signal) != len(line) || len(hist) != len(line) {
		t.Errorf("misaligned outputs: %d/%d/%d", len(line), len(signal), len(hist))
	}
}

func TestMACD_NotEnoughData(t *testing.T) {
	prices := []float64{10, 11, 12}
	line, signal, hist := MACD(prices, 12, 26, 9)
	if len(line) != 0 || len(signal) != 0 || len(hist) != 0 {
		t.Error("expected empty slices for short series")
	}
}
