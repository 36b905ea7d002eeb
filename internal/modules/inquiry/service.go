package inquiry

import (
	"errors"
	"time"

	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
	"gorm.io/gorm"
)

type CreateInquiryDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type UpdateInquiryDTO struct {
	Status     *string `json:"status"`
	AdminReply *string `json:"admin_reply"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create stores a storefront inquiry; it always starts PENDING.
func (s *Service) Create(dto *CreateInquiryDTO) (*models.InquiryModel, error) {
	inq := models.InquiryModel{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Subject: dto.Subject,
		Message: dto.Message,
		Status:  models.InquiryStatusPending,
	}
	return &inq, s.db.Create(&inq).Error
}

func (s *Service) List(status string, page pagination.Query) ([]models.InquiryModel, response.Pagination, error) {
	q := s.db.Model(&models.InquiryModel{}).Order("created_at DESC")
	if status != "" {
		if !models.ValidInquiryStatus(status) {
			return nil, response.Pagination{}, apperr.Validation("status", "알 수 없는 문의 상태입니다")
		}
		q = q.Where("status = ?", status)
	}
	var inquiries []models.InquiryModel
	meta, err := pagination.Paginate(q, page, &inquiries)
	return inquiries, meta, err
}

func (s *Service) GetByID(id string) (*models.InquiryModel, error) {
	var inq models.InquiryModel
	if err := s.db.First(&inq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("inquiry")
		}
		return nil, err
	}
	return &inq, nil
}

// Update applies an admin patch. Storing a non-empty reply flips the row to
// REPLIED, stamps replied_at and records the acting admin's email, all in the
// same UPDATE, so no reader ever sees a reply on a PENDING row. The caller is
// passed in explicitly; this service never reaches into request state.
func (s *Service) Update(id string, dto *UpdateInquiryDTO, caller middleware.Caller) (*models.InquiryModel, error) {
	inq, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.AdminReply != nil {
		updates["admin_reply"] = *dto.AdminReply
		if *dto.AdminReply != "" {
			updates["status"] = models.InquiryStatusReplied
			updates["replied_at"] = s.now()
			updates["replied_by"] = caller.Email
		}
	}
	if dto.Status != nil {
		if !models.ValidInquiryStatus(*dto.Status) {
			return nil, apperr.Validation("status", "알 수 없는 문의 상태입니다")
		}
		updates["status"] = *dto.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(inq).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	inq, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(inq).Error
}
