// Package entity defines the domain models for market indices.
package entity

import "time"

// Index is a stock market index such as the S&P 500 or Nasdaq 100.
type Index struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	Symbol        string  `gorm:"size:20;not null;uniqueIndex" json:"symbol"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	NameTH        *string `gorm:"column:name_th;size:255" json:"name_th"`
	Description   *string `gorm:"type:text" json:"description"`
	DescriptionTH *string `gorm:"column:description_th;type:text" json:"description_th"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Index) TableName() string {
	return "indices"
}

// IndexComponent links a stock into an index, unique per (index, stock) pair.
type IndexComponent struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	IndexSymbol string     `gorm:"size:20;not null;uniqueIndex:uq_index_stock,priority:1;index" json:"-"`
	StockSymbol string     `gorm:"size:10;not null;uniqueIndex:uq_index_stock,priority:2" json:"symbol"`
	Weight      *float64   `json:"weight"`
	AddedDate   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
}

func (IndexComponent) TableName() string {
	return "index_components"
}
