package ordered

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// childRow is a minimal ordered child table for exercising the replacer.
type childRow struct {
	ID       string `gorm:"type:char(36);primaryKey"`
	ParentID string `gorm:"not null;uniqueIndex:idx_child_order,priority:1"`
	Value    string `gorm:"uniqueIndex:idx_child_value"`
	Position int    `gorm:"uniqueIndex:idx_child_order,priority:2"`
}

func (r *childRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&childRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func place(item *childRow, pos int) {
	item.ParentID = "p1"
	item.Position = pos
}

func fetch(t *testing.T, db *gorm.DB, parentID string) []childRow {
	t.Helper()
	var rows []childRow
	if err := db.Where("parent_id = ?", parentID).Order("position ASC").Find(&rows).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}
	return rows
}

func TestReplaceAllAssignsContiguousPositions(t *testing.T) {
	db := newTestDB(t)

	items := []childRow{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	got, err := ReplaceAll(db, "parent_id", "p1", items, place)
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 items back, got %d", len(got))
	}

	rows := fetch(t, db, "p1")
	for i, row := range rows {
		if row.Position != i {
			t.Errorf("row %d: position = %d, want %d", i, row.Position, i)
		}
	}
	if rows[0].Value != "a" || rows[2].Value != "c" {
		t.Errorf("input order not preserved: %+v", rows)
	}
}

func TestReplaceAllOverridesCallerOrdering(t *testing.T) {
	db := newTestDB(t)

	// Caller-supplied positions are ignored; input order wins.
	items := []childRow{
		{Value: "first", Position: 99},
		{Value: "second", Position: 5},
	}
	if _, err := ReplaceAll(db, "parent_id", "p1", items, place); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	rows := fetch(t, db, "p1")
	if rows[0].Value != "first" || rows[0].Position != 0 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Value != "second" || rows[1].Position != 1 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestReplaceAllIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	items := func() []childRow {
		return []childRow{{Value: "x"}, {Value: "y"}}
	}
	if _, err := ReplaceAll(db, "parent_id", "p1", items(), place); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if _, err := ReplaceAll(db, "parent_id", "p1", items(), place); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	rows := fetch(t, db, "p1")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after repeat replace, got %d", len(rows))
	}
}

func TestReplaceAllEmptyInputDeletesAll(t *testing.T) {
	db := newTestDB(t)

	if _, err := ReplaceAll(db, "parent_id", "p1", []childRow{{Value: "a"}}, place); err != nil {
		t.Fatalf("seed replace: %v", err)
	}
	got, err := ReplaceAll(db, "parent_id", "p1", nil, place)
	if err != nil {
		t.Fatalf("empty replace: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
	if rows := fetch(t, db, "p1"); len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

func TestReplaceAllScopedToParent(t *testing.T) {
	db := newTestDB(t)

	other := []childRow{{Value: "other"}}
	if _, err := ReplaceAll(db, "parent_id", "p2", other, func(item *childRow, pos int) {
		item.ParentID = "p2"
		item.Position = pos
	}); err != nil {
		t.Fatalf("seed p2: %v", err)
	}

	if _, err := ReplaceAll(db, "parent_id", "p1", []childRow{{Value: "mine"}}, place); err != nil {
		t.Fatalf("replace p1: %v", err)
	}
	if rows := fetch(t, db, "p2"); len(rows) != 1 {
		t.Errorf("replace of p1 touched p2: %d rows left", len(rows))
	}
}

func TestReplaceAllRollsBackOnFailedInsert(t *testing.T) {
	db := newTestDB(t)

	if _, err := ReplaceAll(db, "parent_id", "p1", []childRow{{Value: "keep"}}, place); err != nil {
		t.Fatalf("seed replace: %v", err)
	}

	// Duplicate values break the unique index mid-insert; the original set
	// must survive untouched.
	bad := []childRow{{Value: "dup"}, {Value: "dup"}}
	if _, err := ReplaceAll(db, "parent_id", "p1", bad, place); err == nil {
		t.Fatal("expected replace to fail on duplicate value")
	}

	rows := fetch(t, db, "p1")
	if len(rows) != 1 || rows[0].Value != "keep" {
		t.Errorf("previous set not preserved after rollback: %+v", rows)
	}
}

func TestPatchAllUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)

	items := []childRow{{Value: "a"}, {Value: "b"}}
	stored, err := ReplaceAll(db, "parent_id", "p1", items, place)
	if err != nil {
		t.Fatalf("seed replace: %v", err)
	}

	patches := []Patch{{
		ID:     idOf(t, db, stored[1].Value),
		Fields: map[string]interface{}{"value": "b2"},
	}}
	if err := PatchAll[childRow](db, "parent_id", "p1", patches); err != nil {
		t.Fatalf("PatchAll: %v", err)
	}

	rows := fetch(t, db, "p1")
	if len(rows) != 2 {
		t.Fatalf("patch changed row count: %d", len(rows))
	}
	if rows[1].Value != "b2" {
		t.Errorf("value not patched: %+v", rows[1])
	}
	if rows[0].Position != 0 || rows[1].Position != 1 {
		t.Errorf("patch disturbed ordering: %+v", rows)
	}
}

func TestPatchAllUnknownIDFailsWholeBatch(t *testing.T) {
	db := newTestDB(t)

	if _, err := ReplaceAll(db, "parent_id", "p1", []childRow{{Value: "a"}}, place); err != nil {
		t.Fatalf("seed replace: %v", err)
	}

	patches := []Patch{
		{ID: idOf(t, db, "a"), Fields: map[string]interface{}{"value": "a2"}},
		{ID: "999", Fields: map[string]interface{}{"value": "ghost"}},
	}
	err := PatchAll[childRow](db, "parent_id", "p1", patches)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	rows := fetch(t, db, "p1")
	if rows[0].Value != "a" {
		t.Errorf("first patch applied despite batch failure: %+v", rows[0])
	}
}

func idOf(t *testing.T, db *gorm.DB, value string) string {
	t.Helper()
	var row childRow
	if err := db.First(&row, "value = ?", value).Error; err != nil {
		t.Fatalf("idOf(%q): %v", value, err)
	}
	return row.ID
}
