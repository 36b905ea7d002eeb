package booking

import (
	"errors"
	"time"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreateBookingDTO struct {
	TourProductID string     `json:"tour_product_id" binding:"required"`
	CustomerName  string     `json:"customer_name" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Email         string     `json:"email"`
	HeadCount     *int       `json:"head_count"`
	DepartureDate *time.Time `json:"departure_date"`
	Message       string     `json:"message"`
}

// UpdateBookingDTO is the admin-side sparse patch. Status may be re-set to
// any enumerated value; there is no transition graph.
type UpdateBookingDTO struct {
	Status    *string `json:"status"`
	AdminMemo *string `json:"admin_memo"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create stores a storefront booking request. The referenced tour product
// must exist; the row always starts PENDING whatever the input says.
func (s *Service) Create(dto *CreateBookingDTO) (*models.BookingModel, error) {
	var count int64
	if err := s.db.Model(&models.ProductModel{}).
		Where("id = ?", dto.TourProductID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.Validation("tour_product_id", "예약할 상품을 찾을 수 없습니다")
	}

	b := models.BookingModel{
		TourProductID: dto.TourProductID,
		CustomerName:  dto.CustomerName,
		Phone:         dto.Phone,
		Email:         dto.Email,
		HeadCount:     1,
		DepartureDate: dto.DepartureDate,
		Message:       dto.Message,
		Status:        models.BookingStatusPending,
	}
	if dto.HeadCount != nil {
		if *dto.HeadCount < 1 {
			return nil, apperr.Validation("head_count", "인원은 1명 이상이어야 합니다")
		}
		b.HeadCount = *dto.HeadCount
	}
	return &b, s.db.Create(&b).Error
}

// List returns bookings for the admin surface, newest first, optionally
// filtered by status.
func (s *Service) List(status string, page pagination.Query) ([]models.BookingModel, response.Pagination, error) {
	q := s.db.Model(&models.BookingModel{}).
		Preload("TourProduct").
		Order("created_at DESC")
	if status != "" {
		if !models.ValidBookingStatus(status) {
			return nil, response.Pagination{}, apperr.Validation("status", "알 수 없는 예약 상태입니다")
		}
		q = q.Where("status = ?", status)
	}
	var bookings []models.BookingModel
	meta, err := pagination.Paginate(q, page, &bookings)
	return bookings, meta, err
}

func (s *Service) GetByID(id string) (*models.BookingModel, error) {
	var b models.BookingModel
	if err := s.db.Preload("TourProduct").First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("booking")
		}
		return nil, err
	}
	return &b, nil
}

func (s *Service) Update(id string, dto *UpdateBookingDTO) (*models.BookingModel, error) {
	b, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Status != nil {
		if !models.ValidBookingStatus(*dto.Status) {
			return nil, apperr.Validation("status", "알 수 없는 예약 상태입니다")
		}
		updates["status"] = *dto.Status
	}
	if dto.AdminMemo != nil {
		updates["admin_memo"] = *dto.AdminMemo
	}

	if len(updates) > 0 {
		if err := s.db.Model(b).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	b, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(b).Error
}
