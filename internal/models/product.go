package models

// ProductModel is a tour product. It owns three ordered child collections
// (images, itineraries, price options) and a tag link set; the children are
// replaced wholesale, never edited row by row (except itinerary description
// patches).
type ProductModel struct {
	Base
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	Title       string `json:"title"       gorm:"not null"`
	Summary     string `json:"summary"`
	Description string `json:"description" gorm:"type:longtext"`
	CategoryID  string `json:"category_id" gorm:"type:char(36);index;not null"`
	Region      string `json:"region"`
	DurationDays   int `json:"duration_days"`
	DurationNights int `json:"duration_nights"`
	BasePrice   int    `json:"base_price"  gorm:"default:0"`
	SortOrder   int    `json:"sort_order"  gorm:"default:0"`
	// No column default on flags: GORM omits zero-valued fields that carry
	// one, so an explicit false would be silently replaced by the default.
	// Services set these on create instead.
	IsActive    bool   `json:"is_active"   gorm:"index"`
	IsFeatured  bool   `json:"is_featured"`

	Category     *CategoryModel     `json:"category,omitempty"      gorm:"foreignKey:CategoryID"`
	Images       []ProductImageModel `json:"images,omitempty"       gorm:"foreignKey:ProductID"`
	Itineraries  []ItineraryModel    `json:"itineraries,omitempty"  gorm:"foreignKey:ProductID"`
	PriceOptions []PriceOptionModel  `json:"price_options,omitempty" gorm:"foreignKey:ProductID"`
	Tags         []TagModel          `json:"tags,omitempty"         gorm:"many2many:product_tags;joinForeignKey:ProductID;joinReferences:TagID"`
}

func (ProductModel) TableName() string { return "products" }

// ProductImageModel is an ordered gallery image of a product.
type ProductImageModel struct {
	ChildBase
	ProductID string `json:"product_id" gorm:"type:char(36);not null;uniqueIndex:idx_product_image_order,priority:1"`
	URL       string `json:"url"        gorm:"not null"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
	SortOrder int    `json:"sort_order" gorm:"uniqueIndex:idx_product_image_order,priority:2"`
}

func (ProductImageModel) TableName() string { return "product_images" }

// ItineraryModel is one ordered day entry of a product schedule.
type ItineraryModel struct {
	ChildBase
	ProductID   string `json:"product_id"  gorm:"type:char(36);not null;uniqueIndex:idx_itinerary_order,priority:1"`
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:longtext"`
	SortOrder   int    `json:"sort_order"  gorm:"uniqueIndex:idx_itinerary_order,priority:2"`
}

func (ItineraryModel) TableName() string { return "itineraries" }

// Price option charge types.
const (
	PriceTypePerPerson = "PER_PERSON"
	PriceTypePerGroup  = "PER_GROUP"
)

// PriceOptionModel is an ordered purchasable option of a product.
type PriceOptionModel struct {
	ChildBase
	ProductID string `json:"product_id" gorm:"type:char(36);not null;uniqueIndex:idx_price_option_order,priority:1"`
	Name      string `json:"name"       gorm:"not null"`
	Price     int    `json:"price"      gorm:"default:0"`
	PriceType string `json:"price_type"`
	IsActive  bool   `json:"is_active"`
	SortOrder int    `json:"sort_order" gorm:"uniqueIndex:idx_price_option_order,priority:2"`
}

func (PriceOptionModel) TableName() string { return "price_options" }

// ProductTagModel is the product↔tag link row. The pair is the identity;
// rows live until the next full replace or parent deletion.
type ProductTagModel struct {
	ProductID string `json:"product_id" gorm:"type:char(36);primaryKey"`
	TagID     string `json:"tag_id"     gorm:"type:char(36);primaryKey"`
}

func (ProductTagModel) TableName() string { return "product_tags" }
