package cache

import "testing"

func TestKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got  string
		want string
	}{
		{QuoteKey("aapl"), "quote:AAPL"},
		{StockKey("Msft"), "stock:MSFT"},
		{ETFKey("voo"), "etf:VOO"},
		{IndexComponentsKey("spx"), "index_components:SPX"},
		{ETFHoldingsKey("qqq"), "etf_holdings:QQQ"},
		{SearchKey("Apple Inc"), "search:apple inc"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
