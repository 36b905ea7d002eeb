package product

import (
	"errors"
	"fmt"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/ordered"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns products matching the query, ordered by sort_order then newest
// first. A category filter covers the category's whole subtree.
func (s *Service) List(query ListQuery, page pagination.Query) ([]models.ProductModel, response.Pagination, error) {
	q := s.db.Model(&models.ProductModel{})

	if query.Category != "" {
		ids, err := s.categoryScopeIDs(query.Category)
		if err != nil {
			return nil, response.Pagination{}, err
		}
		q = q.Where("products.category_id IN ?", ids)
	}
	if query.Tag != "" {
		q = q.Joins("JOIN product_tags ON product_tags.product_id = products.id").
			Joins("JOIN tags ON tags.id = product_tags.tag_id").
			Where("tags.slug = ?", query.Tag)
	}
	if query.IsActive != nil {
		q = q.Where("products.is_active = ?", *query.IsActive)
	}
	if query.Featured != nil {
		q = q.Where("products.is_featured = ?", *query.Featured)
	}

	q = q.Preload("Category").Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("products.sort_order ASC, products.created_at DESC")

	var products []models.ProductModel
	meta, err := pagination.Paginate(q, page, &products)
	return products, meta, err
}

// GetByQuery returns one product by id or slug with all child collections
// preloaded in their stored order. Without includeInactive an inactive
// product reads as absent, so the public detail path does not leak hidden
// content.
func (s *Service) GetByQuery(query string, includeInactive bool) (*models.ProductModel, error) {
	q := s.db.
		Preload("Category").
		Preload("Tags").
		Preload("Images", childOrder).
		Preload("Itineraries", childOrder).
		Preload("PriceOptions", childOrder).
		Where("id = ? OR slug = ?", query, query)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var p models.ProductModel
	err := q.First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return &p, nil
}

func childOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (s *Service) Create(dto *CreateProductDTO) (*models.ProductModel, error) {
	if err := s.ensureCategoryExists(dto.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(dto.Slug, ""); err != nil {
		return nil, err
	}

	p := models.ProductModel{
		Slug:           dto.Slug,
		Title:          dto.Title,
		Summary:        dto.Summary,
		Description:    dto.Description,
		CategoryID:     dto.CategoryID,
		Region:         dto.Region,
		DurationDays:   1,
		DurationNights: 0,
		IsActive:       true,
	}
	if dto.DurationDays != nil {
		p.DurationDays = *dto.DurationDays
	}
	if dto.DurationNights != nil {
		p.DurationNights = *dto.DurationNights
	}
	if dto.BasePrice != nil {
		p.BasePrice = *dto.BasePrice
	}
	if dto.SortOrder != nil {
		p.SortOrder = *dto.SortOrder
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	if dto.IsFeatured != nil {
		p.IsFeatured = *dto.IsFeatured
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, err
	}
	return s.GetByQuery(p.ID, true)
}

func (s *Service) Update(id string, dto *UpdateProductDTO) (*models.ProductModel, error) {
	p, err := s.getBare(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Slug != nil && *dto.Slug != p.Slug {
		if err := s.ensureSlugFree(*dto.Slug, id); err != nil {
			return nil, err
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Summary != nil {
		updates["summary"] = *dto.Summary
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.CategoryID != nil {
		if err := s.ensureCategoryExists(*dto.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *dto.CategoryID
	}
	if dto.Region != nil {
		updates["region"] = *dto.Region
	}
	if dto.DurationDays != nil {
		updates["duration_days"] = *dto.DurationDays
	}
	if dto.DurationNights != nil {
		updates["duration_nights"] = *dto.DurationNights
	}
	if dto.BasePrice != nil {
		updates["base_price"] = *dto.BasePrice
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.IsFeatured != nil {
		updates["is_featured"] = *dto.IsFeatured
	}

	if len(updates) > 0 {
		if err := s.db.Model(p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByQuery(id, true)
}

// Delete removes a product and everything it owns in one transaction: gallery
// images, itineraries, price options, tag links and curation memberships.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.ProductModel
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product")
			}
			return err
		}
		for _, owned := range []interface{}{
			&models.ProductImageModel{},
			&models.ItineraryModel{},
			&models.PriceOptionModel{},
			&models.ProductTagModel{},
		} {
			if err := tx.Where("product_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CurationProductModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

// ReplaceImages swaps the whole gallery. The first image is primary unless
// the input says otherwise.
func (s *Service) ReplaceImages(productID string, inputs []ImageInput) ([]models.ProductImageModel, error) {
	if _, err := s.getBare(productID); err != nil {
		return nil, err
	}
	items := make([]models.ProductImageModel, len(inputs))
	for i, in := range inputs {
		items[i] = models.ProductImageModel{
			URL:       in.URL,
			Alt:       in.Alt,
			IsPrimary: i == 0,
		}
		if in.IsPrimary != nil {
			items[i].IsPrimary = *in.IsPrimary
		}
	}
	return ordered.ReplaceAll(s.db, "product_id", productID, items,
		func(item *models.ProductImageModel, pos int) {
			item.ProductID = productID
			item.SortOrder = pos
		})
}

// ReplaceItineraries swaps the whole day schedule. Missing days count up from
// 1 by position; a missing title becomes "{day}일차".
func (s *Service) ReplaceItineraries(productID string, inputs []ItineraryInput) ([]models.ItineraryModel, error) {
	if _, err := s.getBare(productID); err != nil {
		return nil, err
	}
	items := make([]models.ItineraryModel, len(inputs))
	for i, in := range inputs {
		day := i + 1
		if in.Day != nil {
			day = *in.Day
		}
		title := fmt.Sprintf("%d일차", day)
		if in.Title != nil {
			title = *in.Title
		}
		items[i] = models.ItineraryModel{
			Day:         day,
			Title:       title,
			Description: in.Description,
		}
	}
	return ordered.ReplaceAll(s.db, "product_id", productID, items,
		func(item *models.ItineraryModel, pos int) {
			item.ProductID = productID
			item.SortOrder = pos
		})
}

// PatchItineraries updates named itinerary rows in place, all or nothing.
func (s *Service) PatchItineraries(productID string, inputs []ItineraryPatchInput) ([]models.ItineraryModel, error) {
	if _, err := s.getBare(productID); err != nil {
		return nil, err
	}
	patches := make([]ordered.Patch, 0, len(inputs))
	for _, in := range inputs {
		fields := map[string]interface{}{}
		if in.Title != nil {
			fields["title"] = *in.Title
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		patches = append(patches, ordered.Patch{ID: in.ID, Fields: fields})
	}
	if err := ordered.PatchAll[models.ItineraryModel](s.db, "product_id", productID, patches); err != nil {
		return nil, err
	}
	var items []models.ItineraryModel
	err := s.db.Where("product_id = ?", productID).Order("sort_order ASC").Find(&items).Error
	return items, err
}

// ReplacePriceOptions swaps the whole option set. Missing price_type becomes
// PER_PERSON, missing is_active true.
func (s *Service) ReplacePriceOptions(productID string, inputs []PriceOptionInput) ([]models.PriceOptionModel, error) {
	if _, err := s.getBare(productID); err != nil {
		return nil, err
	}
	items := make([]models.PriceOptionModel, len(inputs))
	for i, in := range inputs {
		items[i] = models.PriceOptionModel{
			Name:      in.Name,
			Price:     in.Price,
			PriceType: models.PriceTypePerPerson,
			IsActive:  true,
		}
		if in.PriceType != nil {
			if *in.PriceType != models.PriceTypePerPerson && *in.PriceType != models.PriceTypePerGroup {
				return nil, apperr.Validation("price_type", "알 수 없는 가격 유형입니다")
			}
			items[i].PriceType = *in.PriceType
		}
		if in.IsActive != nil {
			items[i].IsActive = *in.IsActive
		}
	}
	return ordered.ReplaceAll(s.db, "product_id", productID, items,
		func(item *models.PriceOptionModel, pos int) {
			item.ProductID = productID
			item.SortOrder = pos
		})
}

// ReplaceTags swaps the product's tag link set. Order carries no meaning
// here; the pair (product, tag) is the whole row. Unknown tag ids fail the
// replace before anything is touched.
func (s *Service) ReplaceTags(productID string, tagIDs []string) ([]models.TagModel, error) {
	if _, err := s.getBare(productID); err != nil {
		return nil, err
	}
	if len(tagIDs) > 0 {
		var count int64
		if err := s.db.Model(&models.TagModel{}).Where("id IN ?", tagIDs).Count(&count).Error; err != nil {
			return nil, err
		}
		if count != int64(len(tagIDs)) {
			return nil, apperr.Validation("tag_ids", "존재하지 않는 태그가 포함되어 있습니다")
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductTagModel{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]models.ProductTagModel, len(tagIDs))
		for i, tagID := range tagIDs {
			links[i] = models.ProductTagModel{ProductID: productID, TagID: tagID}
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}

	var tags []models.TagModel
	err = s.db.Joins("JOIN product_tags ON product_tags.tag_id = tags.id").
		Where("product_tags.product_id = ?", productID).
		Order("tags.sort_order ASC").
		Find(&tags).Error
	return tags, err
}

func (s *Service) getBare(id string) (*models.ProductModel, error) {
	var p models.ProductModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) ensureCategoryExists(id string) error {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.Validation("category_id", "카테고리를 찾을 수 없습니다")
	}
	return nil
}

func (s *Service) ensureSlugFree(slug, excludeID string) error {
	q := s.db.Model(&models.ProductModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("이미 사용 중인 슬러그입니다")
	}
	return nil
}

// categoryScopeIDs resolves a category id or slug to the id set of its whole
// subtree.
func (s *Service) categoryScopeIDs(query string) ([]string, error) {
	var cat models.CategoryModel
	if err := s.db.Where("id = ? OR slug = ?", query, query).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	ids := []string{cat.ID}
	frontier := []string{cat.ID}
	for len(frontier) > 0 {
		var next []string
		if err := s.db.Model(&models.CategoryModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		ids = append(ids, next...)
		frontier = next
	}
	return ids, nil
}
