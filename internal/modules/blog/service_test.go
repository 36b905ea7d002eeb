package blog

import (
	"errors"
	"strings"
	"testing"

	"github.com/tourdesk/core/internal/database"
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

func TestGetPublishedRendersMarkdownAndCountsViews(t *testing.T) {
	svc := newTestService(t)

	published := true
	post, err := svc.Create(&CreateBlogPostDTO{
		Title:       "파리 여행기",
		Slug:        "paris-trip",
		Content:     "# 파리\n\n**에펠탑**을 보았다",
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatal("published_at not stamped on publish")
	}

	detail, err := svc.GetPublished("paris-trip")
	if err != nil {
		t.Fatalf("GetPublished: %v", err)
	}
	if !strings.Contains(detail.ContentHTML, "<h1") || !strings.Contains(detail.ContentHTML, "<strong>") {
		t.Errorf("markdown not rendered: %q", detail.ContentHTML)
	}
	if detail.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", detail.ViewCount)
	}

	again, err := svc.GetPublished("paris-trip")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if again.ViewCount != 2 {
		t.Errorf("view_count = %d, want 2", again.ViewCount)
	}
}

func TestGetPublishedHidesDrafts(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(&CreateBlogPostDTO{Title: "초안", Slug: "draft"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.GetPublished("draft"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound for draft, got %v", err)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(&CreateBlogPostDTO{Title: "a", Slug: "same"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(&CreateBlogPostDTO{Title: "b", Slug: "same"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestUnpublishKeepsFirstPublishedAt(t *testing.T) {
	svc := newTestService(t)

	published := true
	post, err := svc.Create(&CreateBlogPostDTO{Title: "a", Slug: "a", IsPublished: &published})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first := *post.PublishedAt

	off := false
	if _, err := svc.Update(post.ID, &UpdateBlogPostDTO{IsPublished: &off}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	got, err := svc.Update(post.ID, &UpdateBlogPostDTO{IsPublished: &published})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(first) {
		t.Errorf("published_at changed on republish: %v != %v", got.PublishedAt, first)
	}
}
