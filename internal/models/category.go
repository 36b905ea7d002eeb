package models

// MaxCategoryLevel is the deepest allowed category level (root=0, branch=1, leaf=2).
const MaxCategoryLevel = 2

// CategoryModel is a node in the three-tier catalog category tree.
// Level is always derived from ancestry at write time: 0 for roots,
// parent.Level+1 otherwise.
type CategoryModel struct {
	Base
	Name      string  `json:"name"       gorm:"not null"`
	Slug      string  `json:"slug"       gorm:"uniqueIndex;not null"`
	ParentID  *string `json:"parent_id"  gorm:"type:char(36);index"`
	Level     int     `json:"level"      gorm:"default:0"`
	SortOrder int     `json:"sort_order" gorm:"default:0"`

	Products []ProductModel `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }

// CategoryNode is a category with its resolved children, as returned by the
// tree endpoint. Children are ordered by sort_order at every level.
type CategoryNode struct {
	CategoryModel
	Children []CategoryNode `json:"children"`
}
