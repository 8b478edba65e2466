// Package trend classifies price action against moving averages.
package trend

// Trend is a three-state label derived from price vs. moving averages.
type Trend string

const (
	Uptrend   Trend = "uptrend"
	Downtrend Trend = "downtrend"
	Sideways  Trend = "sideways"
)

// Classify returns the trend for a price and its 50/200-day simple moving
// averages. Uptrend requires strict price > SMA50 > SMA200, downtrend the
// strict inverse. Any missing input and every other ordering (including
// equality) is Sideways. The same function is used at ingestion and on the
// read path so stored and freshly computed labels never diverge.
func Classify(price, sma50, sma200 *float64) Trend {
	if price == nil || sma50 == nil || sma200 == nil {
		return Sideways
	}
	switch {
	case *price > *sma50 && *sma50 > *sma200:
		return Uptrend
	case *price < *sma50 && *sma50 < *sma200:
		return Downtrend
	default:
		return Sideways
	}
}

// thaiLabels maps each trend to its Thai display label.
var thaiLabels = map[Trend]string{
	Uptrend:   "ขาขึ้น",
	Downtrend: "ขาลง",
	Sideways:  "ไซด์เวย์",
}

// ThaiLabel returns the Thai translation of a trend label.
// Unknown values fall back to the sideways label.
func ThaiLabel(t Trend) string {
	if th, ok := thaiLabels[t]; ok {
		return th
	}
	return thaiLabels[Sideways]
}
