package indicator

import "testing"

func TestCompute_LongSeries(t *testing.T) {
	n := 250
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		closes[i] = float64(i + 1)
		highs[i] = closes[i] + 1
		lows[i] = closes[i] - 1
	}

	snap := Compute(highs, lows, closes)

	if snap.Close != 250 {
		t.Errorf("Close = %f, want 250", snap.Close)
	}
	if snap.MA20 == nil || !almostEqual(*snap.MA20, 240.5, 0.0001) {
		t.Errorf("MA20 = %v, want 240.5", snap.MA20)
	}
	if snap.MA200 == nil {
		t.Error("MA200 should be available for 250 bars")
	}
	if snap.RSI == nil || *snap.RSI != 100 {
		t.Errorf("RSI = %v, want 100 for a straight uptrend", snap.RSI)
	}
	if snap.MACD == nil || snap.MACDSignal == nil || snap.MACDHistogram == nil {
		t.Error("MACD values should be available")
	}
	if snap.ATR == nil || snap.BBUpper == nil || snap.BBMiddle == nil || snap.BBLower == nil {
		t.Error("volatility values should be available")
	}
}

func TestCompute_ShortSeries(t *testing.T) {
	closes := []float64{10, 11, 12}
	highs := []float64{11, 12, 13}
	lows := []float64{9, 10, 11}

	snap := Compute(highs, lows, closes)

	if snap.Close != 12 {
		t.Errorf("Close = %f, want 12", snap.Close)
	}
	if snap.MA200 != nil || snap.RSI != nil || snap.MACD != nil {
		t.Error("long-period indicators should be nil for 3 bars")
	}
}

func TestCompute_Empty(t *testing.T) {
	snap := Compute(nil, nil, nil)
	if snap.Close != 0 || snap.MA20 != nil {
		t.Error("empty series should produce a zero snapshot")
	}
}

func TestSnapshot_RowOrder(t *testing.T) {
	snap := Snapshot{Close: 150.25}
	rows := snap.Rows()

	wantOrder := []string{
		"Close", "MA20", "MA50", "MA200", "RSI",
		"MACD", "MACD_Signal", "MACD_Histogram", "ATR",
		"BB_Upper", "BB_Middle", "BB_Lower",
	}
	if len(rows) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(rows))
	}
	for i, name := range wantOrder {
		if rows[i].Name != name {
			t.Errorf("row %d = %q, want %q", i, rows[i].Name, name)
		}
	}
	if rows[0].Value == nil || *rows[0].Value != 150.25 {
		t.Error("Close row should carry the close value")
	}
	if rows[1].Value != nil {
		t.Error("MA20 row should be nil when unavailable")
	}
}
