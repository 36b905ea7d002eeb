package category

import (
	"errors"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug" binding:"required"`
	ParentID  *string `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`
}

type UpdateCategoryDTO struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	ParentID  *string `json:"parent_id"`
	SortOrder *int    `json:"sort_order"`

	// ParentID cannot distinguish "absent" from "set to null" by itself, so
	// reparenting to root is expressed with parent_id: "".
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Tree returns the whole category forest, three levels deep at most, children
// ordered by sort_order at every level. Built in two passes over one query:
// group rows by parent, then attach each group to its parent node.
func (s *Service) Tree() ([]models.CategoryNode, error) {
	var cats []models.CategoryModel
	if err := s.db.Order("sort_order ASC, created_at ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return buildTree(cats), nil
}

func buildTree(cats []models.CategoryModel) []models.CategoryNode {
	byParent := make(map[string][]models.CategoryModel, len(cats))
	for _, cat := range cats {
		key := ""
		if cat.ParentID != nil {
			key = *cat.ParentID
		}
		byParent[key] = append(byParent[key], cat)
	}

	var attach func(parentKey string) []models.CategoryNode
	attach = func(parentKey string) []models.CategoryNode {
		rows := byParent[parentKey]
		nodes := make([]models.CategoryNode, 0, len(rows))
		for _, row := range rows {
			nodes = append(nodes, models.CategoryNode{
				CategoryModel: row,
				Children:      attach(row.ID),
			})
		}
		return nodes
	}
	return attach("")
}

func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) GetByQuery(query string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.Where("id = ? OR slug = ?", query, query).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category")
		}
		return nil, err
	}
	return &cat, nil
}

// Create inserts a category. Level is never taken from input: roots get 0,
// children get parent.Level+1, and a parent already at the deepest level
// cannot take children.
func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	cat := models.CategoryModel{Name: dto.Name, Slug: dto.Slug}
	if dto.SortOrder != nil {
		cat.SortOrder = *dto.SortOrder
	}

	if dto.ParentID != nil && *dto.ParentID != "" {
		parent, err := s.GetByID(*dto.ParentID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("parent_id", "상위 카테고리를 찾을 수 없습니다")
			}
			return nil, err
		}
		if parent.Level >= models.MaxCategoryLevel {
			return nil, apperr.Validation("parent_id", "카테고리는 3단계까지만 만들 수 있습니다")
		}
		cat.ParentID = &parent.ID
		cat.Level = parent.Level + 1
	}

	if err := s.ensureSlugFree(dto.Slug, ""); err != nil {
		return nil, err
	}
	return &cat, s.db.Create(&cat).Error
}

// Update applies a sparse patch. Reparenting recomputes the node's level from
// the new ancestry and shifts every descendant by the same delta, rejecting
// moves that would push any descendant past the deepest level or create a
// cycle. The level updates commit together.
func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil && *dto.Slug != cat.Slug {
		if err := s.ensureSlugFree(*dto.Slug, id); err != nil {
			return nil, err
		}
		updates["slug"] = *dto.Slug
	}
	if dto.SortOrder != nil {
		updates["sort_order"] = *dto.SortOrder
	}

	if dto.ParentID != nil {
		newLevel, err := s.resolveNewLevel(cat, *dto.ParentID)
		if err != nil {
			return nil, err
		}
		if *dto.ParentID == "" {
			updates["parent_id"] = nil
		} else {
			updates["parent_id"] = *dto.ParentID
		}
		delta := newLevel - cat.Level

		err = s.db.Transaction(func(tx *gorm.DB) error {
			updates["level"] = newLevel
			if err := tx.Model(cat).Updates(updates).Error; err != nil {
				return err
			}
			if delta == 0 {
				return nil
			}
			descendants, err := s.descendantIDs(tx, cat.ID)
			if err != nil {
				return err
			}
			if len(descendants) == 0 {
				return nil
			}
			return tx.Model(&models.CategoryModel{}).
				Where("id IN ?", descendants).
				Update("level", gorm.Expr("level + ?", delta)).Error
		})
		if err != nil {
			return nil, err
		}
		return s.GetByID(id)
	}

	if len(updates) == 0 {
		return cat, nil
	}
	if err := s.db.Model(cat).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a category. The child/product checks and the delete run in
// one transaction so a concurrent insert cannot slip a row under a vanishing
// parent.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cat models.CategoryModel
		if err := tx.First(&cat, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("category")
			}
			return err
		}

		var children int64
		if err := tx.Model(&models.CategoryModel{}).
			Where("parent_id = ?", id).Count(&children).Error; err != nil {
			return err
		}
		if children > 0 {
			return apperr.Conflict("하위 카테고리가 있어 삭제할 수 없습니다")
		}

		var products int64
		if err := tx.Model(&models.ProductModel{}).
			Where("category_id = ?", id).Count(&products).Error; err != nil {
			return err
		}
		if products > 0 {
			return apperr.Conflict("소속 상품이 있어 삭제할 수 없습니다")
		}

		return tx.Delete(&cat).Error
	})
}

// DescendantIDs returns the ids of every category in the subtree rooted at
// id, the root included. Product listing uses it to widen a category filter.
func (s *Service) DescendantIDs(id string) ([]string, error) {
	ids, err := s.descendantIDs(s.db, id)
	if err != nil {
		return nil, err
	}
	return append([]string{id}, ids...), nil
}

func (s *Service) resolveNewLevel(cat *models.CategoryModel, parentID string) (int, error) {
	if parentID == "" {
		return 0, nil
	}
	if parentID == cat.ID {
		return 0, apperr.Validation("parent_id", "자기 자신을 상위로 지정할 수 없습니다")
	}

	var parent models.CategoryModel
	if err := s.db.First(&parent, "id = ?", parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.Validation("parent_id", "상위 카테고리를 찾을 수 없습니다")
		}
		return 0, err
	}

	descendants, err := s.descendantIDs(s.db, cat.ID)
	if err != nil {
		return 0, err
	}
	for _, d := range descendants {
		if d == parentID {
			return 0, apperr.Validation("parent_id", "하위 카테고리 아래로 옮길 수 없습니다")
		}
	}

	newLevel := parent.Level + 1
	depth, err := s.subtreeDepth(cat.ID)
	if err != nil {
		return 0, err
	}
	if newLevel+depth > models.MaxCategoryLevel {
		return 0, apperr.Validation("parent_id", "카테고리는 3단계까지만 만들 수 있습니다")
	}
	return newLevel, nil
}

// descendantIDs walks the subtree breadth-first; two hops suffice given the
// depth cap but the loop is written generally.
func (s *Service) descendantIDs(db *gorm.DB, id string) ([]string, error) {
	var all []string
	frontier := []string{id}
	for len(frontier) > 0 {
		var next []string
		if err := db.Model(&models.CategoryModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return nil, err
		}
		all = append(all, next...)
		frontier = next
	}
	return all, nil
}

// subtreeDepth is the number of levels below id (0 for a leaf).
func (s *Service) subtreeDepth(id string) (int, error) {
	depth := 0
	frontier := []string{id}
	for {
		var next []string
		if err := s.db.Model(&models.CategoryModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &next).Error; err != nil {
			return 0, err
		}
		if len(next) == 0 {
			return depth, nil
		}
		depth++
		frontier = next
	}
}

func (s *Service) ensureSlugFree(slug, excludeID string) error {
	q := s.db.Model(&models.CategoryModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("이미 사용 중인 슬러그입니다")
	}
	return nil
}
