// Package entity defines the domain models for the ETFs feature.
package entity

import "time"

// ETF holds the descriptive record of an exchange-traded fund.
type ETF struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	Symbol        string     `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	NameTH        *string    `gorm:"column:name_th;size:255" json:"name_th"`
	Category      *string    `gorm:"size:100;index" json:"category"`
	ExpenseRatio  *float64   `json:"expense_ratio"`
	AUM           *int64     `gorm:"column:aum" json:"aum"`
	Description   *string    `gorm:"type:text" json:"description"`
	DescriptionTH *string    `gorm:"column:description_th;type:text" json:"description_th"`
	Provider      *string    `gorm:"size:100" json:"provider"`
	InceptionDate *time.Time `json:"inception_date"`
	IsActive      bool       `gorm:"not null;default:true" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (ETF) TableName() string {
	return "etfs"
}

// ETFHolding is one position inside an ETF, unique per (etf, holding) pair.
type ETFHolding struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	ETFSymbol     string    `gorm:"column:etf_symbol;size:10;not null;uniqueIndex:uq_etf_holding,priority:1" json:"-"`
	HoldingSymbol *string   `gorm:"size:10;uniqueIndex:uq_etf_holding,priority:2" json:"holding_symbol"`
	HoldingName   *string   `gorm:"size:255" json:"holding_name"`
	Weight        *float64  `json:"weight"`
	Shares        *int64    `json:"shares"`
	UpdatedAt     time.Time `json:"-"`
}

func (ETFHolding) TableName() string {
	return "etf_holdings"
}

// FundProfile is the descriptive ETF record returned by the quote provider.
type FundProfile struct {
	Symbol       string
	Name         string
	Category     *string
	ExpenseRatio *float64
	AUM          *int64
	Description  *string
	Holdings     []FundHolding
}

// FundHolding is one provider-reported position of a fund.
type FundHolding struct {
	Symbol *string
	Name   *string
	Weight *float64
	Shares *int64
}
