package auth

import (
	"errors"
	"time"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenTTL is how long a login token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// failureDelay slows down credential guessing. Applied on every failed
// login, whatever the cause, so timing does not reveal which part failed.
const failureDelay = 3 * time.Second

var errBadCredentials = errors.New("bad credentials")

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string             `json:"token"`
	Admin *models.AdminModel `json:"admin"`
}

type Service struct {
	db    *gorm.DB
	sleep func(time.Duration)
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, sleep: time.Sleep}
}

// Login verifies the credentials and issues a signed token. Inactive
// accounts fail exactly like wrong passwords.
func (s *Service) Login(dto *LoginDTO, clientIP string) (*LoginResult, error) {
	result, err := s.login(dto, clientIP)
	if err != nil {
		s.sleep(failureDelay)
		return nil, apperr.Validation("email", "이메일 또는 비밀번호가 올바르지 않습니다")
	}
	return result, nil
}

func (s *Service) login(dto *LoginDTO, clientIP string) (*LoginResult, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin, "email = ?", dto.Email).Error; err != nil {
		return nil, errBadCredentials
	}
	if !admin.IsActive {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(dto.Password)); err != nil {
		return nil, errBadCredentials
	}

	token, err := jwt.Sign(admin.ID, admin.Email, admin.Role, tokenTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&admin).Updates(map[string]interface{}{
		"last_login_at": now,
		"last_login_ip": clientIP,
	}).Error; err != nil {
		return nil, err
	}
	admin.LastLoginAt = &now
	admin.LastLoginIP = clientIP

	return &LoginResult{Token: token, Admin: &admin}, nil
}

// Me returns the current admin's own account row.
func (s *Service) Me(adminID string) (*models.AdminModel, error) {
	var admin models.AdminModel
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("admin")
		}
		return nil, err
	}
	return &admin, nil
}
