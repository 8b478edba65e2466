// Package entity defines the domain model for Thai analysis articles.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Analysis is a Thai-language analysis article for a stock or ETF.
type Analysis struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Symbol     string `gorm:"size:10;not null;index:idx_analysis_symbol" json:"symbol"`
	SymbolType string `gorm:"size:10;not null;index:idx_analysis_symbol" json:"symbol_type"` // "stock" or "etf"

	Title     string  `gorm:"size:255;not null" json:"title"`
	TitleTH   *string `gorm:"column:title_th;size:255" json:"title_th"`
	SummaryTH *string `gorm:"column:summary_th;type:text" json:"summary_th"`
	ContentTH string  `gorm:"column:content_th;type:text;not null" json:"content_th"`

	TrendOpinion *string              `gorm:"size:20" json:"trend_opinion"`
	TargetPrice  *decimal.Decimal     `gorm:"type:numeric(12,4)" json:"target_price"`

	Author      *string    `gorm:"size:100" json:"author"`
	Status      string     `gorm:"size:20;not null;default:draft;index" json:"status"`
	PublishedAt *time.Time `json:"published_at"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Analysis) TableName() string {
	return "analysis"
}
