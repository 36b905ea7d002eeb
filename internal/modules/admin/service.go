package admin

import (
	"errors"

	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateAdminDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type UpdateAdminDTO struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List() ([]models.AdminModel, error) {
	var admins []models.AdminModel
	return admins, s.db.Order("created_at ASC").Find(&admins).Error
}

func (s *Service) GetByID(id string) (*models.AdminModel, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("admin")
		}
		return nil, err
	}
	return &admin, nil
}

func (s *Service) Create(dto *CreateAdminDTO) (*models.AdminModel, error) {
	role := models.RoleStaff
	if dto.Role != "" {
		if !models.ValidAdminRole(dto.Role) {
			return nil, apperr.Validation("role", "알 수 없는 권한입니다")
		}
		role = dto.Role
	}
	if err := s.ensureEmailFree(dto.Email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := models.AdminModel{
		Email:    dto.Email,
		Password: string(hash),
		Name:     dto.Name,
		Role:     role,
		IsActive: true,
	}
	return &admin, s.db.Create(&admin).Error
}

// Update patches an admin account. A caller cannot change their own role;
// that check runs before any store access.
func (s *Service) Update(id string, dto *UpdateAdminDTO, caller middleware.Caller) (*models.AdminModel, error) {
	if dto.Role != nil && caller.ID == id {
		return nil, apperr.Validation("role", "자신의 권한은 변경할 수 없습니다")
	}

	admin, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Email != nil && *dto.Email != admin.Email {
		if err := s.ensureEmailFree(*dto.Email, id); err != nil {
			return nil, err
		}
		updates["email"] = *dto.Email
	}
	if dto.Password != nil {
		if len(*dto.Password) < 8 {
			return nil, apperr.Validation("password", "비밀번호는 8자 이상이어야 합니다")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Role != nil {
		if !models.ValidAdminRole(*dto.Role) {
			return nil, apperr.Validation("role", "알 수 없는 권한입니다")
		}
		updates["role"] = *dto.Role
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(admin).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Delete removes an admin account. Self-deletion is rejected before any
// store access.
func (s *Service) Delete(id string, caller middleware.Caller) error {
	if caller.ID == id {
		return apperr.Validation("id", "자신의 계정은 삭제할 수 없습니다")
	}
	admin, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(admin).Error
}

func (s *Service) ensureEmailFree(email, excludeID string) error {
	q := s.db.Model(&models.AdminModel{}).Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("이미 등록된 이메일입니다")
	}
	return nil
}
