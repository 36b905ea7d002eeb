package tag

import (
	"errors"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CreateTagDTO struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Type      string `json:"type"`
	SortOrder *int   `json:"sort_order"`
}

type UpdateTagDTO struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	Type      *string `json:"type"`
	SortOrder *int    `json:"sort_order"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(tagType string) ([]models.TagModel, error) {
	q := s.db.Order("sort_order ASC, created_at ASC")
	if tagType != "" {
		q = q.Where("type = ?", tagType)
	}
	var tags []models.TagModel
	return tags, q.Find(&tags).Error
}

func (s *Service) GetByID(id string) (*models.TagModel, error) {
	var tag models.TagModel
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tag")
		}
		return nil, err
	}
	return &tag, nil
}

func (s *Service) Create(dto *CreateTagDTO) (*models.TagModel, error) {
	tag := models.TagModel{Name: dto.Name, Slug: dto.Slug, Type: models.TagTypeTheme}
	if dto.Type != "" {
		if !models.ValidTagType(dto.Type) {
			return nil, apperr.Validation("type", "알 수 없는 태그 유형입니다")
		}
		tag.Type = dto.Type
	}
	if dto.SortOrder != nil {
		tag.SortOrder = *dto.SortOrder
	}
	if err := s.ensureSlugFree(dto.Slug, ""); err != nil {
		return nil, err
	}
	return &tag, s.db.Create(&tag).Error
}

func (s *Service) Update(id string, dto *UpdateTagDTO) (*models.TagModel, error) {
	tag, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != tag.Slug {
		if err := s.ensureSlugFree(*dto.Slug, id); err != nil {
			return nil, err
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Type != nil {
		if !models.ValidTagType(*dto.Type) {
			return nil, apperr.Validation("type", "알 수 없는 태그 유형입니다")
		}
		updates["type"] = *dto.Type
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if len(updates) == 0 {
		return tag, nil
	}
	if err := s.db.Model(tag).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes the tag and its product links in one transaction. Products
// themselves are untouched.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.TagModel
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("tag")
			}
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.ProductTagModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

func (s *Service) ensureSlugFree(slug, excludeID string) error {
	q := s.db.Model(&models.TagModel{}).Where("slug = ?", slug)
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
