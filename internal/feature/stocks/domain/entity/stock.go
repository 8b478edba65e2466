// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock holds the descriptive record of a US equity, including the
// Thai-translated display fields. Profile fields (CEO, Employees,
// Headquarters, FoundedYear) are absent until the first successful provider
// fetch and are cached indefinitely after that; only an explicit re-sync
// refreshes them.
type Stock struct {
	ID            uint    `gorm:"primaryKey" json:"-"`
	Symbol        string  `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	NameTH        *string `gorm:"column:name_th;size:255" json:"name_th"`
	Sector        *string `gorm:"size:100;index" json:"sector"`
	Industry      *string `gorm:"size:100" json:"industry"`
	Description   *string `gorm:"type:text" json:"description"`
	DescriptionTH *string `gorm:"column:description_th;type:text" json:"description_th"`
	LogoURL       *string `gorm:"column:logo_url;size:500" json:"logo_url"`
	Website       *string `gorm:"size:500" json:"website"`
	CEO           *string `gorm:"column:ceo;size:255" json:"ceo"`
	Employees     *int    `json:"employees"`
	Headquarters  *string `gorm:"size:255" json:"headquarters"`
	FoundedYear   *int    `json:"founded_year"`
	Country       string  `gorm:"size:50;default:USA" json:"country"`
	Exchange      *string `gorm:"size:20" json:"exchange"`
	IsActive      bool    `gorm:"not null;default:true" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Stock) TableName() string {
	return "stocks"
}

// HasProfile reports whether the lazily loaded profile fields are populated.
func (s *Stock) HasProfile() bool {
	return s.CEO != nil && s.Employees != nil
}

// Profile is the descriptive company record returned by the quote provider.
type Profile struct {
	Symbol       string
	Name         string
	Sector       *string
	Industry     *string
	Description  *string
	Website      *string
	Exchange     *string
	Country      *string
	CEO          *string
	Employees    *int
	Headquarters *string
}
