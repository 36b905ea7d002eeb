package models

import "time"

// BannerModel is a time-windowed storefront banner. A nil StartDate/EndDate
// means unbounded on that side.
type BannerModel struct {
	Base
	Title     string     `json:"title"      gorm:"not null"`
	ImageURL  string     `json:"image_url"  gorm:"not null"`
	LinkURL   string     `json:"link_url"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	SortOrder int        `json:"sort_order" gorm:"default:0"`
	IsActive  bool       `json:"is_active"  gorm:"index"`
}

func (BannerModel) TableName() string { return "banners" }

// VisibleAt reports whether the banner should show at the given instant.
func (b BannerModel) VisibleAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDate != nil && now.Before(*b.StartDate) {
		return false
	}
	if b.EndDate != nil && now.After(*b.EndDate) {
		return false
	}
	return true
}

// QuickIconModel is an always-on storefront shortcut icon.
type QuickIconModel struct {
	Base
	Title     string `json:"title"      gorm:"not null"`
	IconURL   string `json:"icon_url"   gorm:"not null"`
	LinkURL   string `json:"link_url"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	IsActive  bool   `json:"is_active"  gorm:"index"`
}

func (QuickIconModel) TableName() string { return "quick_icons" }
