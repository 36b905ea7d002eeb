package blog

import (
	"bytes"
	"errors"
	"time"

	"github.com/tourdesk/core/internal/models"
	"github.com/tourdesk/core/internal/pkg/apperr"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

type CreateBlogPostDTO struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	CoverImage  string `json:"cover_image"`
	IsPublished *bool  `json:"is_published"`
}

type UpdateBlogPostDTO struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Summary     *string `json:"summary"`
	Content     *string `json:"content"`
	CoverImage  *string `json:"cover_image"`
	IsPublished *bool   `json:"is_published"`
}

// PostDetail is the public detail payload: the stored post plus its markdown
// rendered to HTML.
type PostDetail struct {
	models.BlogPostModel
	ContentHTML string `json:"content_html"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListPublished returns published posts for the storefront, newest first.
func (s *Service) ListPublished(page pagination.Query) ([]models.BlogPostModel, response.Pagination, error) {
	q := s.db.Model(&models.BlogPostModel{}).
		Where("is_published = ?", true).
		Order("published_at DESC, created_at DESC")
	var posts []models.BlogPostModel
	meta, err := pagination.Paginate(q, page, &posts)
	return posts, meta, err
}

// GetPublished returns one published post by slug, bumps its view counter
// with a single relative UPDATE, and renders the markdown body.
func (s *Service) GetPublished(slug string) (*PostDetail, error) {
	var post models.BlogPostModel
	if err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("blog post")
		}
		return nil, err
	}

	if err := s.db.Model(&post).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	post.ViewCount++

	html, err := renderMarkdown(post.Content)
	if err != nil {
		return nil, err
	}
	return &PostDetail{BlogPostModel: post, ContentHTML: html}, nil
}

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ListAll returns every post for the admin surface, drafts included.
func (s *Service) ListAll(page pagination.Query) ([]models.BlogPostModel, response.Pagination, error) {
	q := s.db.Model(&models.BlogPostModel{}).Order("created_at DESC")
	var posts []models.BlogPostModel
	meta, err := pagination.Paginate(q, page, &posts)
	return posts, meta, err
}

func (s *Service) GetByID(id string) (*models.BlogPostModel, error) {
	var post models.BlogPostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("blog post")
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) Create(dto *CreateBlogPostDTO) (*models.BlogPostModel, error) {
	if err := s.ensureSlugFree(dto.Slug, ""); err != nil {
		return nil, err
	}
	post := models.BlogPostModel{
		Title:      dto.Title,
		Slug:       dto.Slug,
		Summary:    dto.Summary,
		Content:    dto.Content,
		CoverImage: dto.CoverImage,
	}
	if dto.IsPublished != nil && *dto.IsPublished {
		now := time.Now()
		post.IsPublished = true
		post.PublishedAt = &now
	}
	return &post, s.db.Create(&post).Error
}

func (s *Service) Update(id string, dto *UpdateBlogPostDTO) (*models.BlogPostModel, error) {
	post, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Slug != nil && *dto.Slug != post.Slug {
		if err := s.ensureSlugFree(*dto.Slug, id); err != nil {
			return nil, err
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Summary != nil {
		updates["summary"] = *dto.Summary
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.CoverImage != nil {
		updates["cover_image"] = *dto.CoverImage
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
		// PublishedAt marks the first publication and survives unpublishing.
		if *dto.IsPublished && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	post, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.db.Delete(post).Error
}

func (s *Service) ensureSlugFree(slug, excludeID string) error {
	q := s.db.Model(&models.BlogPostModel{}).Where("slug = ?", slug)
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
