package models

// CurationModel is an editor-curated product collection shown on the
// storefront. Member order is the curation's own ordering, independent of
// each product's native sort_order.
type CurationModel struct {
	Base
	Title     string `json:"title"      gorm:"not null"`
	Subtitle  string `json:"subtitle"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
	IsActive  bool   `json:"is_active"  gorm:"index"`

	Products []CurationProductModel `json:"products,omitempty" gorm:"foreignKey:CurationID"`
}

func (CurationModel) TableName() string { return "curations" }

// CurationProductModel is an ordered membership row of a curation.
type CurationProductModel struct {
	ChildBase
	CurationID string `json:"curation_id" gorm:"type:char(36);not null;uniqueIndex:idx_curation_product_order,priority:1"`
	ProductID  string `json:"product_id"  gorm:"type:char(36);not null;index"`
	SortOrder  int    `json:"sort_order"  gorm:"uniqueIndex:idx_curation_product_order,priority:2"`

	Product *ProductModel `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (CurationProductModel) TableName() string { return "curation_products" }
