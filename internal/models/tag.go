package models

// Tag types group tags on the storefront filter UI.
const (
	TagTypeTheme  = "THEME"
	TagTypeRegion = "REGION"
	TagTypeSeason = "SEASON"
)

// TagModel is a product label, linked many-to-many via product_tags.
type TagModel struct {
	Base
	Name      string `json:"name"       gorm:"not null"`
	Slug      string `json:"slug"       gorm:"uniqueIndex;not null"`
	Type      string `json:"type"       gorm:"default:THEME;index"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

func (TagModel) TableName() string { return "tags" }

// ValidTagType reports whether t is one of the enumerated tag types.
func ValidTagType(t string) bool {
	switch t {
	case TagTypeTheme, TagTypeRegion, TagTypeSeason:
		return true
	}
	return false
}
