package inquiry

import (
	"errors"
	"testing"
	"time"

	"github.com/tourdesk/core/internal/database"
	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testCaller = middleware.Caller{ID: "admin-1", Email: "staff@tourdesk.local", Role: models.RoleStaff}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func seedInquiry(t *testing.T, svc *Service) *models.InquiryModel {
	t.Helper()
	inq, err := svc.Create(&CreateInquiryDTO{
		Name:    "홍길동",
		Email:   "hong@example.com",
		Message: "파리 투어 문의드립니다",
	})
	if err != nil {
		t.Fatalf("seed inquiry: %v", err)
	}
	return inq
}

func TestCreateStartsPending(t *testing.T) {
	svc := newTestService(t)
	inq := seedInquiry(t, svc)
	if inq.Status != models.InquiryStatusPending {
		t.Errorf("status = %q, want PENDING", inq.Status)
	}
}

func TestReplySetsStatusTimestampAndAuthorTogether(t *testing.T) {
	svc := newTestService(t)
	fixed := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	inq := seedInquiry(t, svc)

	reply := "안녕하세요, 답변드립니다"
	got, err := svc.Update(inq.ID, &UpdateInquiryDTO{AdminReply: &reply}, testCaller)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.InquiryStatusReplied {
		t.Errorf("status = %q, want REPLIED", got.Status)
	}
	if got.RepliedAt == nil || !got.RepliedAt.Equal(fixed) {
		t.Errorf("replied_at = %v, want %v", got.RepliedAt, fixed)
	}
	if got.RepliedBy != testCaller.Email {
		t.Errorf("replied_by = %q, want %q", got.RepliedBy, testCaller.Email)
	}
	if got.AdminReply != reply {
		t.Errorf("admin_reply = %q", got.AdminReply)
	}
}

func TestEmptyReplyDoesNotFlipStatus(t *testing.T) {
	svc := newTestService(t)
	inq := seedInquiry(t, svc)

	empty := ""
	got, err := svc.Update(inq.ID, &UpdateInquiryDTO{AdminReply: &empty}, testCaller)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.InquiryStatusPending {
		t.Errorf("empty reply flipped status to %q", got.Status)
	}
	if got.RepliedAt != nil {
		t.Errorf("empty reply stamped replied_at: %v", got.RepliedAt)
	}
}

func TestExplicitCloseAfterReply(t *testing.T) {
	svc := newTestService(t)
	inq := seedInquiry(t, svc)

	reply := "답변"
	if _, err := svc.Update(inq.ID, &UpdateInquiryDTO{AdminReply: &reply}, testCaller); err != nil {
		t.Fatalf("reply: %v", err)
	}

	closed := models.InquiryStatusClosed
	got, err := svc.Update(inq.ID, &UpdateInquiryDTO{Status: &closed}, testCaller)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if got.Status != models.InquiryStatusClosed {
		t.Errorf("status = %q, want CLOSED", got.Status)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t)
	inq := seedInquiry(t, svc)

	bad := "ARCHIVED"
	_, err := svc.Update(inq.ID, &UpdateInquiryDTO{Status: &bad}, testCaller)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}
