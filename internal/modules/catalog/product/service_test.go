package product

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

func seedCategory(t *testing.T, svc *Service, slug string, parentID *string) *models.CategoryModel {
	t.Helper()
	cat := models.CategoryModel{Name: slug, Slug: slug, ParentID: parentID}
	if parentID != nil {
		var parent models.CategoryModel
		if err := svc.db.First(&parent, "id = ?", *parentID).Error; err != nil {
			t.Fatalf("load parent: %v", err)
		}
		cat.Level = parent.Level + 1
	}
	if err := svc.db.Create(&cat).Error; err != nil {
		t.Fatalf("seed category %q: %v", slug, err)
	}
	return &cat
}

func seedProduct(t *testing.T, svc *Service, slug, categoryID string) *models.ProductModel {
	t.Helper()
	p, err := svc.Create(&CreateProductDTO{Slug: slug, Title: slug, CategoryID: categoryID})
	if err != nil {
		t.Fatalf("seed product %q: %v", slug, err)
	}
	return p
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)

	p := seedProduct(t, svc, "paris-tour", cat.ID)
	if !p.IsActive {
		t.Error("new product should default to active")
	}
	if p.DurationDays != 1 || p.DurationNights != 0 {
		t.Errorf("duration defaults = %d/%d, want 1/0", p.DurationDays, p.DurationNights)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(&CreateProductDTO{Slug: "x", Title: "x", CategoryID: "missing"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}
}

func TestUpdateSparsePatchWritesFalse(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	active := false
	got, err := svc.Update(p.ID, &UpdateProductDTO{IsActive: &active})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.IsActive {
		t.Error("is_active=false patch was not stored")
	}
	if got.Title != p.Title {
		t.Errorf("absent field changed: title %q -> %q", p.Title, got.Title)
	}

	zero := 0
	got, err = svc.Update(p.ID, &UpdateProductDTO{BasePrice: &zero})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.BasePrice != 0 {
		t.Errorf("base_price=0 patch was not stored: %d", got.BasePrice)
	}
}

func TestReplaceImagesDefaultsPrimary(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	images, err := svc.ReplaceImages(p.ID, []ImageInput{
		{URL: "https://img/1.jpg"},
		{URL: "https://img/2.jpg"},
	})
	if err != nil {
		t.Fatalf("ReplaceImages: %v", err)
	}
	if !images[0].IsPrimary || images[1].IsPrimary {
		t.Errorf("primary defaulting wrong: %+v", images)
	}
	if images[0].SortOrder != 0 || images[1].SortOrder != 1 {
		t.Errorf("sort order not contiguous: %+v", images)
	}
}

func TestReplaceItinerariesDefaultsDayAndTitle(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	title := "에펠탑 투어"
	items, err := svc.ReplaceItineraries(p.ID, []ItineraryInput{
		{Description: "도착"},
		{Title: &title, Description: "관광"},
	})
	if err != nil {
		t.Fatalf("ReplaceItineraries: %v", err)
	}
	if items[0].Day != 1 || items[0].Title != "1일차" {
		t.Errorf("first day defaults wrong: %+v", items[0])
	}
	if items[1].Day != 2 || items[1].Title != title {
		t.Errorf("second day wrong: %+v", items[1])
	}
}

func TestReplacePriceOptionsDefaults(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	group := models.PriceTypePerGroup
	inactive := false
	options, err := svc.ReplacePriceOptions(p.ID, []PriceOptionInput{
		{Name: "성인", Price: 100000},
		{Name: "단체", Price: 900000, PriceType: &group, IsActive: &inactive},
	})
	if err != nil {
		t.Fatalf("ReplacePriceOptions: %v", err)
	}
	if options[0].PriceType != models.PriceTypePerPerson || !options[0].IsActive {
		t.Errorf("defaults wrong: %+v", options[0])
	}
	if options[1].PriceType != models.PriceTypePerGroup || options[1].IsActive {
		t.Errorf("explicit values lost: %+v", options[1])
	}
}

func TestPatchItinerariesAllOrNothing(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	items, err := svc.ReplaceItineraries(p.ID, []ItineraryInput{
		{Description: "원래 일정"},
	})
	if err != nil {
		t.Fatalf("seed itineraries: %v", err)
	}

	desc := "수정된 일정"
	_, err = svc.PatchItineraries(p.ID, []ItineraryPatchInput{
		{ID: items[0].ID, Description: &desc},
		{ID: "missing", Description: &desc},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	var after models.ItineraryModel
	if err := svc.db.First(&after, "id = ?", items[0].ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.Description != "원래 일정" {
		t.Errorf("partial patch leaked through: %q", after.Description)
	}
}

func TestReplaceTagsRejectsUnknownID(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	tag := models.TagModel{Name: "테마", Slug: "theme", Type: models.TagTypeTheme}
	if err := svc.db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	if _, err := svc.ReplaceTags(p.ID, []string{tag.ID}); err != nil {
		t.Fatalf("ReplaceTags: %v", err)
	}

	_, err := svc.ReplaceTags(p.ID, []string{tag.ID, "ghost"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}

	var links int64
	svc.db.Model(&models.ProductTagModel{}).Where("product_id = ?", p.ID).Count(&links)
	if links != 1 {
		t.Errorf("link set changed by failed replace: %d rows", links)
	}
}

func TestReplaceTagsVisibleThroughRelation(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	theme := models.TagModel{Name: "휴양", Slug: "resort", Type: models.TagTypeTheme}
	region := models.TagModel{Name: "유럽", Slug: "europe-tag", Type: models.TagTypeRegion}
	for _, tag := range []*models.TagModel{&theme, &region} {
		if err := svc.db.Create(tag).Error; err != nil {
			t.Fatalf("seed tag: %v", err)
		}
	}
	if _, err := svc.ReplaceTags(p.ID, []string{theme.ID, region.ID}); err != nil {
		t.Fatalf("ReplaceTags: %v", err)
	}

	got, err := svc.GetByQuery(p.ID, true)
	if err != nil {
		t.Fatalf("GetByQuery: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("expected 2 tags through the relation, got %d", len(got.Tags))
	}

	products, _, err := svc.List(ListQuery{Tag: "resort"}, pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if len(products) != 1 || products[0].ID != p.ID {
		t.Fatalf("tag filter did not find the linked product: %+v", products)
	}
	if len(products[0].Tags) != 2 {
		t.Errorf("list did not preload tags: %+v", products[0].Tags)
	}
}

func TestCreatePersistsExplicitInactive(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)

	inactive := false
	p, err := svc.Create(&CreateProductDTO{
		Slug: "hidden-tour", Title: "숨김 상품", CategoryID: cat.ID,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.IsActive {
		t.Error("create returned active for an explicitly inactive product")
	}

	var stored models.ProductModel
	if err := svc.db.First(&stored, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IsActive {
		t.Error("is_active=false was not persisted")
	}
}

func TestPublicReadHidesInactiveProduct(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	inactive := false
	if _, err := svc.Update(p.ID, &UpdateProductDTO{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.GetByQuery(p.Slug, false); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("public detail of inactive product: got %v, want NotFound", err)
	}
	if got, err := svc.GetByQuery(p.Slug, true); err != nil || got.ID != p.ID {
		t.Fatalf("admin detail of inactive product: %v", err)
	}
}

func TestDeleteCascadesOwnedRows(t *testing.T) {
	svc := newTestService(t)
	cat := seedCategory(t, svc, "europe", nil)
	p := seedProduct(t, svc, "paris-tour", cat.ID)

	if _, err := svc.ReplaceImages(p.ID, []ImageInput{{URL: "https://img/1.jpg"}}); err != nil {
		t.Fatalf("seed images: %v", err)
	}
	if _, err := svc.ReplaceItineraries(p.ID, []ItineraryInput{{Description: "d"}}); err != nil {
		t.Fatalf("seed itineraries: %v", err)
	}
	tag := models.TagModel{Name: "테마", Slug: "theme"}
	if err := svc.db.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	if _, err := svc.ReplaceTags(p.ID, []string{tag.ID}); err != nil {
		t.Fatalf("seed tags: %v", err)
	}

	if err := svc.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var images, itineraries, links int64
	svc.db.Model(&models.ProductImageModel{}).Where("product_id = ?", p.ID).Count(&images)
	svc.db.Model(&models.ItineraryModel{}).Where("product_id = ?", p.ID).Count(&itineraries)
	svc.db.Model(&models.ProductTagModel{}).Where("product_id = ?", p.ID).Count(&links)
	if images != 0 || itineraries != 0 || links != 0 {
		t.Errorf("owned rows not cascaded: images=%d itineraries=%d links=%d", images, itineraries, links)
	}
}

func TestListFilterCoversCategorySubtree(t *testing.T) {
	svc := newTestService(t)

	root := seedCategory(t, svc, "europe", nil)
	child := seedCategory(t, svc, "france", &root.ID)
	other := seedCategory(t, svc, "asia", nil)

	seedProduct(t, svc, "paris-tour", child.ID)
	seedProduct(t, svc, "rome-tour", root.ID)
	seedProduct(t, svc, "tokyo-tour", other.ID)

	products, meta, err := svc.List(ListQuery{Category: "europe"}, pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if meta.Total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 products in subtree, got %d (total %d)", len(products), meta.Total)
	}
	for _, p := range products {
		if p.Slug == "tokyo-tour" {
			t.Error("category filter leaked a product from another tree")
		}
	}
}
