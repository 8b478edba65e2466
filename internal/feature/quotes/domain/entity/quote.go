// Package entity defines the domain models for market quotes.
package entity

import (
	"time"

	"thaivest_backend/internal/shared/trend"
)

// Quote is a point-in-time snapshot returned by the quote provider. Optional
// numerics are pointers: absent means the provider had no value, never zero.
// Field and JSON names are the canonical contract shared by the provider
// adapter, the latest_quotes columns, and API responses.
type Quote struct {
	Symbol        string      `json:"symbol"`
	Price         *float64    `json:"price"`
	ChangeAmount  *float64    `json:"change_amount"`
	ChangePercent *float64    `json:"change_percent"`
	OpenPrice     *float64    `json:"open_price"`
	HighPrice     *float64    `json:"high_price"`
	LowPrice      *float64    `json:"low_price"`
	Volume        *int64      `json:"volume"`
	MarketCap     *int64      `json:"market_cap"`
	PERatio       *float64    `json:"pe_ratio"`
	EPS           *float64    `json:"eps"`
	Week52High    *float64    `json:"week_52_high"`
	Week52Low     *float64    `json:"week_52_low"`
	AvgVolume10D  *int64      `json:"avg_volume_10d"`
	DividendYield *float64    `json:"dividend_yield"`
	SMA50         *float64    `json:"sma_50"`
	SMA200        *float64    `json:"sma_200"`
	Trend         trend.Trend `json:"trend"`
}

// LatestQuote is the single mutable quote row per symbol. Created on first
// successful fetch, overwritten in place by every sync cycle, never deleted.
type LatestQuote struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Symbol     string `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	SymbolType string `gorm:"size:10;not null;index" json:"symbol_type"` // "stock" or "etf"

	Price         *float64 `gorm:"column:price" json:"price"`
	ChangeAmount  *float64 `gorm:"column:change_amount" json:"change_amount"`
	ChangePercent *float64 `gorm:"column:change_percent" json:"change_percent"`
	OpenPrice     *float64 `gorm:"column:open_price" json:"open_price"`
	HighPrice     *float64 `gorm:"column:high_price" json:"high_price"`
	LowPrice      *float64 `gorm:"column:low_price" json:"low_price"`
	Volume        *int64   `gorm:"column:volume" json:"volume"`

	MarketCap *int64   `gorm:"column:market_cap" json:"market_cap"`
	PERatio   *float64 `gorm:"column:pe_ratio" json:"pe_ratio"`
	EPS       *float64 `gorm:"column:eps" json:"eps"`

	Week52High    *float64 `gorm:"column:week_52_high" json:"week_52_high"`
	Week52Low     *float64 `gorm:"column:week_52_low" json:"week_52_low"`
	AvgVolume10D  *int64   `gorm:"column:avg_volume_10d" json:"avg_volume_10d"`
	DividendYield *float64 `gorm:"column:dividend_yield" json:"dividend_yield"`

	SMA50  *float64 `gorm:"column:sma_50" json:"sma_50"`
	SMA200 *float64 `gorm:"column:sma_200" json:"sma_200"`
	Trend  string   `gorm:"size:20" json:"trend"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName keeps the table name aligned with the original schema.
func (LatestQuote) TableName() string {
	return "latest_quotes"
}

// FromQuote builds a LatestQuote row from a provider snapshot.
func FromQuote(q *Quote, symbolType string) LatestQuote {
	return LatestQuote{
		Symbol:        q.Symbol,
		SymbolType:    symbolType,
		Price:         q.Price,
		ChangeAmount:  q.ChangeAmount,
		ChangePercent: q.ChangePercent,
		OpenPrice:     q.OpenPrice,
		HighPrice:     q.HighPrice,
		LowPrice:      q.LowPrice,
		Volume:        q.Volume,
		MarketCap:     q.MarketCap,
		PERatio:       q.PERatio,
		EPS:           q.EPS,
		Week52High:    q.Week52High,
		Week52Low:     q.Week52Low,
		AvgVolume10D:  q.AvgVolume10D,
		DividendYield: q.DividendYield,
		SMA50:         q.SMA50,
		SMA200:        q.SMA200,
		Trend:         string(q.Trend),
	}
}
