package product

type CreateProductDTO struct {
	Slug           string `json:"slug" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Summary        string `json:"summary"`
	Description    string `json:"description"`
	CategoryID     string `json:"category_id" binding:"required"`
	Region         string `json:"region"`
	DurationDays   *int   `json:"duration_days"`
	DurationNights *int   `json:"duration_nights"`
	BasePrice      *int   `json:"base_price"`
	SortOrder      *int   `json:"sort_order"`
	IsActive       *bool  `json:"is_active"`
	IsFeatured     *bool  `json:"is_featured"`
}

// UpdateProductDTO is a sparse patch: nil means "leave alone", a present
// false/0/"" is a real write.
type UpdateProductDTO struct {
	Slug           *string `json:"slug"`
	Title          *string `json:"title"`
	Summary        *string `json:"summary"`
	Description    *string `json:"description"`
	CategoryID     *string `json:"category_id"`
	Region         *string `json:"region"`
	DurationDays   *int    `json:"duration_days"`
	DurationNights *int    `json:"duration_nights"`
	BasePrice      *int    `json:"base_price"`
	SortOrder      *int    `json:"sort_order"`
	IsActive       *bool   `json:"is_active"`
	IsFeatured     *bool   `json:"is_featured"`
}

// ImageInput is one gallery entry of a full image-set replace. A missing
// is_primary defaults to true for the first entry only.
type ImageInput struct {
	URL       string `json:"url" binding:"required"`
	Alt       string `json:"alt"`
	IsPrimary *bool  `json:"is_primary"`
}

// ItineraryInput is one day entry of a full itinerary replace. A missing day
// defaults to position+1; a missing title defaults to "{day}일차".
type ItineraryInput struct {
	Day         *int    `json:"day"`
	Title       *string `json:"title"`
	Description string  `json:"description"`
}

// ItineraryPatchInput names one existing itinerary row and the fields to
// change in place.
type ItineraryPatchInput struct {
	ID          string  `json:"id" binding:"required"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// PriceOptionInput is one entry of a full price-option replace. A missing
// price_type defaults to PER_PERSON; a missing is_active defaults to true.
type PriceOptionInput struct {
	Name      string  `json:"name" binding:"required"`
	Price     int     `json:"price"`
	PriceType *string `json:"price_type"`
	IsActive  *bool   `json:"is_active"`
}

// TagsInput carries the complete new tag id set for a product.
type TagsInput struct {
	TagIDs []string `json:"tag_ids"`
}

// ListQuery holds the public listing filters.
type ListQuery struct {
	Category string
	Tag      string
	IsActive *bool
	Featured *bool
}
