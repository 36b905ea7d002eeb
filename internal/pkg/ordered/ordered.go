// Package ordered implements the bulk child-collection operations shared by
// every "save all children" endpoint: product images, itineraries, price
// options and curation memberships.
package ordered

import (
	"gorm.io/gorm"

	"github.com/tourdesk/core/internal/pkg/apperr"
)

// ReplaceAll swaps the entire child set of one parent in a single
// transaction: every existing row matching parentColumn=parentID is deleted,
// then items are inserted in the given order. place stamps each item with the
// parent id and its zero-based position; any caller-supplied sort order is
// ignored. An empty items slice means "delete all, keep none".
//
// Readers never observe the deleted-but-not-yet-inserted state: the pair
// commits or rolls back as one unit. If any insert violates a store
// constraint the whole replace fails and the previous set survives.
func ReplaceAll[T any](db *gorm.DB, parentColumn, parentID string, items []T, place func(item *T, pos int)) ([]T, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var model T
		if err := tx.Where(parentColumn+" = ?", parentID).Delete(&model).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			place(&items[i], i)
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Patch names one existing row and the fields to change on it.
type Patch struct {
	ID     string
	Fields map[string]interface{}
}

// PatchAll applies a batch of partial updates to existing child rows of one
// parent. The whole batch runs in one transaction: either every named row is
// patched or none is. Rows are updated in place, never deleted or reordered;
// a patch naming a row that does not belong to the parent fails the batch
// with NotFound.
func PatchAll[T any](db *gorm.DB, parentColumn, parentID string, patches []Patch) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range patches {
			if len(p.Fields) == 0 {
				continue
			}
			var model T
			var count int64
			if err := tx.Model(&model).
				Where("id = ? AND "+parentColumn+" = ?", p.ID, parentID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperr.NotFound("item")
			}
			if err := tx.Model(&model).
				Where("id = ? AND "+parentColumn+" = ?", p.ID, parentID).
				Updates(p.Fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
