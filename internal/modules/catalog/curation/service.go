package curation

import (
	"errors"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/ordered"
	"gorm.io/gorm"
)

type CreateCurationDTO struct {
	Title     string `json:"title" binding:"required"`
	Subtitle  string `json:"subtitle"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

type UpdateCurationDTO struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// MembersInput carries the complete new member product id list, in display
// order.
type MembersInput struct {
	ProductIDs []string `json:"product_ids"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListActive returns active curations for the storefront, each with its
// member products in curation order.
func (s *Service) ListActive() ([]models.CurationModel, error) {
	var curations []models.CurationModel
	err := s.db.Where("is_active = ?", true).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Products.Product").
		Order("sort_order ASC, created_at ASC").
		Find(&curations).Error
	return curations, err
}

// ListAll returns every curation for the admin surface.
func (s *Service) ListAll() ([]models.CurationModel, error) {
	var curations []models.CurationModel
	err := s.db.Order("sort_order ASC, created_at ASC").Find(&curations).Error
	return curations, err
}

func (s *Service) GetByID(id string) (*models.CurationModel, error) {
	var cur models.CurationModel
	err := s.db.
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Products.Product").
		First(&cur, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("curation")
		}
		return nil, err
	}
	return &cur, nil
}

func (s *Service) Create(dto *CreateCurationDTO) (*models.CurationModel, error) {
	cur := models.CurationModel{Title: dto.Title, Subtitle: dto.Subtitle, IsActive: true}
	if dto.SortOrder != nil {
		cur.SortOrder = *dto.SortOrder
	}
	if dto.IsActive != nil {
		cur.IsActive = *dto.IsActive
	}
	return &cur, s.db.Create(&cur).Error
}

func (s *Service) Update(id string, dto *UpdateCurationDTO) (*models.CurationModel, error) {
	var cur models.CurationModel
	if err := s.db.First(&cur, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("curation")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Subtitle != nil {
		updates["subtitle"] = *dto.Subtitle
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&cur).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Delete removes the curation and its membership rows together.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cur models.CurationModel
		if err := tx.First(&cur, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("curation")
			}
			return err
		}
		if err := tx.Where("curation_id = ?", id).Delete(&models.CurationProductModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cur).Error
	})
}

// ReplaceMembers swaps the curation's whole member list. Every product id
// must exist; one unknown id fails the replace and the previous list
// survives.
func (s *Service) ReplaceMembers(curationID string, productIDs []string) ([]models.CurationProductModel, error) {
	if _, err := s.GetByID(curationID); err != nil {
		return nil, err
	}
	if len(productIDs) > 0 {
		var count int64
		if err := s.db.Model(&models.ProductModel{}).Where("id IN ?", productIDs).Count(&count).Error; err != nil {
			return nil, err
		}
		if count != int64(len(productIDs)) {
			return nil, apperr.Validation("product_ids", "존재하지 않는 상품이 포함되어 있습니다")
		}
	}

	items := make([]models.CurationProductModel, len(productIDs))
	for i, productID := range productIDs {
		items[i] = models.CurationProductModel{ProductID: productID}
	}
	if _, err := ordered.ReplaceAll(s.db, "curation_id", curationID, items,
		func(item *models.CurationProductModel, pos int) {
			item.CurationID = curationID
			item.SortOrder = pos
		}); err != nil {
		return nil, err
	}

	var withProducts []models.CurationProductModel
	err := s.db.Preload("Product").
		Where("curation_id = ?", curationID).
		Order("sort_order ASC").
		Find(&withProducts).Error
	return withProducts, err
}
