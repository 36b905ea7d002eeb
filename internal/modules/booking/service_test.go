package booking

import (
	"errors"
	"testing"

	"github.com/tourdesk/core/internal/database"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *models.ProductModel) {
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

	cat := models.CategoryModel{Name: "유럽", Slug: "europe"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := models.ProductModel{Slug: "paris-tour", Title: "파리 투어", CategoryID: cat.ID, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return NewService(db), &product
}

func TestCreateStartsPending(t *testing.T) {
	svc, product := newTestService(t)

	b, err := svc.Create(&CreateBookingDTO{
		TourProductID: product.ID,
		CustomerName:  "홍길동",
		Phone:         "010-1234-5678",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want PENDING", b.Status)
	}
	if b.HeadCount != 1 {
		t.Errorf("head_count default = %d, want 1", b.HeadCount)
	}
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(&CreateBookingDTO{
		TourProductID: "ghost",
		CustomerName:  "홍길동",
		Phone:         "010-1234-5678",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

func TestUpdateAllowsAnyEnumTransition(t *testing.T) {
	svc, product := newTestService(t)

	b, err := svc.Create(&CreateBookingDTO{TourProductID: product.ID, CustomerName: "홍길동", Phone: "010"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// No transition graph: COMPLETED may go straight back to PENDING.
	for _, status := range []string{
		models.BookingStatusCompleted,
		models.BookingStatusPending,
		models.BookingStatusCancelled,
	} {
		got, err := svc.Update(b.ID, &UpdateBookingDTO{Status: &status})
		if err != nil {
			t.Fatalf("Update to %s: %v", status, err)
		}
		if got.Status != status {
			t.Errorf("status = %q, want %q", got.Status, status)
		}
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, product := newTestService(t)

	b, err := svc.Create(&CreateBookingDTO{TourProductID: product.ID, CustomerName: "홍길동", Phone: "010"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	bad := "ON_HOLD"
	_, err = svc.Update(b.ID, &UpdateBookingDTO{Status: &bad})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	svc, product := newTestService(t)

	first, _ := svc.Create(&CreateBookingDTO{TourProductID: product.ID, CustomerName: "a", Phone: "1"})
	if _, err := svc.Create(&CreateBookingDTO{TourProductID: product.ID, CustomerName: "b", Phone: "2"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	confirmed := models.BookingStatusConfirmed
	if _, err := svc.Update(first.ID, &UpdateBookingDTO{Status: &confirmed}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	bookings, meta, err := svc.List(models.BookingStatusConfirmed, pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if meta.Total != 1 || len(bookings) != 1 || bookings[0].ID != first.ID {
		t.Errorf("status filter wrong: total=%d len=%d", meta.Total, len(bookings))
	}
}
