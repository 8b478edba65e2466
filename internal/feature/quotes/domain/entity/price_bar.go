package entity

import "time"

// PriceBar is one immutable daily OHLCV row for a symbol. Rows are unique per
// (symbol, date); re-ingestion upserts instead of duplicating.
type PriceBar struct {
	Symbol string
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}
