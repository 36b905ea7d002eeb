package display

import (
	"errors"
	"time"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CreateBannerDTO struct {
	Title     string     `json:"title" binding:"required"`
	ImageURL  string     `json:"image_url" binding:"required"`
	LinkURL   string     `json:"link_url"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	SortOrder *int       `json:"sort_order"`
	IsActive  *bool      `json:"is_active"`
}

type UpdateBannerDTO struct {
	Title     *string    `json:"title"`
	ImageURL  *string    `json:"image_url"`
	LinkURL   *string    `json:"link_url"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	SortOrder *int       `json:"sort_order"`
	IsActive  *bool      `json:"is_active"`

	// A date window side cannot be cleared through this patch; clearing is
	// expressed with the matching Clear flag so a nil pointer stays "absent".
	ClearStartDate bool `json:"clear_start_date"`
	ClearEndDate   bool `json:"clear_end_date"`
}

type CreateQuickIconDTO struct {
	Title     string `json:"title" binding:"required"`
	IconURL   string `json:"icon_url" binding:"required"`
	LinkURL   string `json:"link_url"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

type UpdateQuickIconDTO struct {
	Title     *string `json:"title"`
	IconURL   *string `json:"icon_url"`
	LinkURL   *string `json:"link_url"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// Service manages the storefront display surface: banners and quick icons.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// VisibleBanners returns active banners whose date window covers now,
// sort_order ordered. The window check runs in Go so a nil side means
// unbounded without store-specific null handling.
func (s *Service) VisibleBanners() ([]models.BannerModel, error) {
	var banners []models.BannerModel
	if err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&banners).Error; err != nil {
		return nil, err
	}
	now := s.now()
	visible := make([]models.BannerModel, 0, len(banners))
	for _, b := range banners {
		if b.VisibleAt(now) {
			visible = append(visible, b)
		}
	}
	return visible, nil
}

func (s *Service) ListBanners() ([]models.BannerModel, error) {
	var banners []models.BannerModel
	return banners, s.db.Order("sort_order ASC, created_at ASC").Find(&banners).Error
}

func (s *Service) GetBanner(id string) (*models.BannerModel, error) {
	var b models.BannerModel
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("banner")
		}
		return nil, err
	}
	return &b, nil
}

func (s *Service) CreateBanner(dto *CreateBannerDTO) (*models.BannerModel, error) {
	if dto.StartDate != nil && dto.EndDate != nil && dto.EndDate.Before(*dto.StartDate) {
		return nil, apperr.Validation("end_date", "종료일이 시작일보다 빠릅니다")
	}
	b := models.BannerModel{
		Title:     dto.Title,
		ImageURL:  dto.ImageURL,
		LinkURL:   dto.LinkURL,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		IsActive:  true,
	}
	if dto.SortOrder != nil {
		b.SortOrder = *dto.SortOrder
	}
	if dto.IsActive != nil {
		b.IsActive = *dto.IsActive
	}
	return &b, s.db.Create(&b).Error
}

func (s *Service) UpdateBanner(id string, dto *UpdateBannerDTO) (*models.BannerModel, error) {
	b, err := s.GetBanner(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.LinkURL != nil {
		updates["link_url"] = *dto.LinkURL
	}
	if dto.StartDate != nil {
		updates["start_date"] = *dto.StartDate
	}
	if dto.EndDate != nil {
		updates["end_date"] = *dto.EndDate
	}
	if dto.ClearStartDate {
		updates["start_date"] = nil
	}
	if dto.ClearEndDate {
		updates["end_date"] = nil
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetBanner(id)
}

func (s *Service) DeleteBanner(id string) error {
	b, err := s.GetBanner(id)
	if err != nil {
		return err
	}
	return s.db.Delete(b).Error
}

func (s *Service) VisibleQuickIcons() ([]models.QuickIconModel, error) {
	var icons []models.QuickIconModel
	return icons, s.db.Where("is_active = ?", true).
		Order("sort_order ASC, created_at ASC").
		Find(&icons).Error
}

func (s *Service) ListQuickIcons() ([]models.QuickIconModel, error) {
	var icons []models.QuickIconModel
	return icons, s.db.Order("sort_order ASC, created_at ASC").Find(&icons).Error
}

func (s *Service) GetQuickIcon(id string) (*models.QuickIconModel, error) {
	var icon models.QuickIconModel
	if err := s.db.First(&icon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quick icon")
		}
		return nil, err
	}
	return &icon, nil
}

func (s *Service) CreateQuickIcon(dto *CreateQuickIconDTO) (*models.QuickIconModel, error) {
	icon := models.QuickIconModel{
		Title:    dto.Title,
		IconURL:  dto.IconURL,
		LinkURL:  dto.LinkURL,
		IsActive: true,
	}
	if dto.SortOrder != nil {
		icon.SortOrder = *dto.SortOrder
	}
	if dto.IsActive != nil {
		icon.IsActive = *dto.IsActive
	}
	return &icon, s.db.Create(&icon).Error
}

func (s *Service) UpdateQuickIcon(id string, dto *UpdateQuickIconDTO) (*models.QuickIconModel, error) {
	icon, err := s.GetQuickIcon(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.IconURL != nil {
		updates["icon_url"] = *dto.IconURL
	}
	if dto.LinkURL != nil {
		updates["link_url"] = *dto.LinkURL
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(icon).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetQuickIcon(id)
}

func (s *Service) DeleteQuickIcon(id string) error {
	icon, err := s.GetQuickIcon(id)
	if err != nil {
		return err
	}
	return s.db.Delete(icon).Error
}
