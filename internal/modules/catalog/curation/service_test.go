package curation

import (
	"errors"
	"testing"

	"github.com/tourdesk/core/internal/database"
	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func seedProducts(t *testing.T, svc *Service, slugs ...string) []string {
	t.Helper()
	cat := models.CategoryModel{Name: "유럽", Slug: "europe"}
	if err := svc.db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	ids := make([]string, len(slugs))
	for i, slug := range slugs {
		p := models.ProductModel{Slug: slug, Title: slug, CategoryID: cat.ID, IsActive: true}
		if err := svc.db.Create(&p).Error; err != nil {
			t.Fatalf("seed product %q: %v", slug, err)
		}
		ids[i] = p.ID
	}
	return ids
}

func TestReplaceMembersKeepsInputOrder(t *testing.T) {
	svc := newTestService(t)
	ids := seedProducts(t, svc, "a", "b", "c")

	cur, err := svc.Create(&CreateCurationDTO{Title: "여름 추천"})
	if err != nil {
		t.Fatalf("create curation: %v", err)
	}

	members, err := svc.ReplaceMembers(cur.ID, []string{ids[2], ids[0]})
	if err != nil {
		t.Fatalf("ReplaceMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].ProductID != ids[2] || members[0].SortOrder != 0 {
		t.Errorf("first member wrong: %+v", members[0])
	}
	if members[1].ProductID != ids[0] || members[1].SortOrder != 1 {
		t.Errorf("second member wrong: %+v", members[1])
	}
	if members[0].Product == nil || members[0].Product.Slug != "c" {
		t.Errorf("member product not loaded: %+v", members[0].Product)
	}
}

func TestReplaceMembersRejectsUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	ids := seedProducts(t, svc, "a")

	cur, err := svc.Create(&CreateCurationDTO{Title: "여름 추천"})
	if err != nil {
		t.Fatalf("create curation: %v", err)
	}
	if _, err := svc.ReplaceMembers(cur.ID, ids); err != nil {
		t.Fatalf("seed members: %v", err)
	}

	_, err = svc.ReplaceMembers(cur.ID, []string{ids[0], "ghost"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}

	var count int64
	svc.db.Model(&models.CurationProductModel{}).Where("curation_id = ?", cur.ID).Count(&count)
	if count != 1 {
		t.Errorf("failed replace changed member set: %d rows", count)
	}
}

func TestReplaceMembersEmptyClearsAll(t *testing.T) {
	svc := newTestService(t)
	ids := seedProducts(t, svc, "a")

	cur, err := svc.Create(&CreateCurationDTO{Title: "여름 추천"})
	if err != nil {
		t.Fatalf("create curation: %v", err)
	}
	if _, err := svc.ReplaceMembers(cur.ID, ids); err != nil {
		t.Fatalf("seed members: %v", err)
	}

	members, err := svc.ReplaceMembers(cur.ID, nil)
	if err != nil {
		t.Fatalf("empty replace: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected no members, got %d", len(members))
	}
}

func TestListActiveExcludesInactive(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(&CreateCurationDTO{Title: "공개"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	off := false
	if _, err := svc.Create(&CreateCurationDTO{Title: "비공개", IsActive: &off}); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].Title != "공개" {
		t.Errorf("active filter wrong: %+v", active)
	}
}

func TestDeleteRemovesMemberships(t *testing.T) {
	svc := newTestService(t)
	ids := seedProducts(t, svc, "a")

	cur, err := svc.Create(&CreateCurationDTO{Title: "여름 추천"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ReplaceMembers(cur.ID, ids); err != nil {
		t.Fatalf("seed members: %v", err)
	}

	if err := svc.Delete(cur.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var count int64
	svc.db.Model(&models.CurationProductModel{}).Where("curation_id = ?", cur.ID).Count(&count)
	if count != 0 {
		t.Errorf("memberships survived delete: %d rows", count)
	}
}
