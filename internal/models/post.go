package models

import (
	"time"
)

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// ValidPostStatus reports whether s is one of the known post statuses.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post is a blog post. Deleting the author cascades to posts; deleting the
// category nulls CategoryID instead.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       *string    `gorm:"type:text" json:"excerpt,omitempty"`
	FeaturedImage *string    `gorm:"size:500" json:"featured_image,omitempty"`
	Status        PostStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ViewsCount    int        `gorm:"not null;default:0" json:"views_count"`
	AuthorID      uint       `gorm:"not null;index" json:"author_id"`
	Author        User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	CategoryID    *uint      `gorm:"index" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags          []Tag      `gorm:"many2many:post_tags" json:"tags"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int        `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// PostResponse is the joined projection returned by every read path.
type PostResponse struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Content       string           `json:"content"`
	Excerpt       *string          `json:"excerpt,omitempty"`
	FeaturedImage *string          `json:"featured_image,omitempty"`
	Status        PostStatus       `json:"status"`
	ViewsCount    int              `json:"views_count"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	PublishedAt   *time.Time       `json:"published_at,omitempty"`
	Author        AuthorSummary    `json:"author"`
	Category      *CategorySummary `json:"category,omitempty"`
	Tags          []TagSummary     `json:"tags"`
	CommentsCount int              `json:"comments_count"`
}

// ToResponse flattens the post and its preloaded relations into the shared
// projection shape.
func (p *Post) ToResponse() *PostResponse {
	resp := &PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Status:        p.Status,
		ViewsCount:    p.ViewsCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		PublishedAt:   p.PublishedAt,
		Author:        p.Author.Summary(),
		Tags:          make([]TagSummary, 0, len(p.Tags)),
		CommentsCount: p.CommentsCount,
	}
	if p.Category != nil {
		s := p.Category.Summary()
		resp.Category = &s
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, t.Summary())
	}
	return resp
}

// PaginatedPosts is the envelope returned by the listing endpoints.
type PaginatedPosts struct {
	Data       []*PostResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
