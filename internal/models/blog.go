package models

import "time"

// BlogPostModel is a storefront blog article. Content is markdown; the
// public detail endpoint serves a rendered HTML body alongside it.
type BlogPostModel struct {
	Base
	Title       string     `json:"title"        gorm:"not null"`
	Slug        string     `json:"slug"         gorm:"uniqueIndex;not null"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"      gorm:"type:longtext"`
	CoverImage  string     `json:"cover_image"`
	IsPublished bool       `json:"is_published" gorm:"default:false;index"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int        `json:"view_count"   gorm:"default:0"`
}

func (BlogPostModel) TableName() string { return "blog_posts" }
