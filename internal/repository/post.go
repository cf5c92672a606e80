package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/models"

	"gorm.io/gorm"
)

// postDetailSelect attaches the computed comment count to every post row.
// The count is recomputed per read, never stored.
const postDetailSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count"

// sortColumns is the allow-list for dynamic sorting. Anything outside it
// falls back to created_at so request input can never reach ORDER BY raw.
var sortColumns = map[string]string{
	"createdAt":  "posts.created_at",
	"updatedAt":  "posts.updated_at",
	"title":      "posts.title",
	"viewsCount": "posts.views_count",
}

// PostFilter is the composed filter/sort/pagination criteria for List.
type PostFilter struct {
	Page       int
	Limit      int
	Status     models.PostStatus
	CategoryID *uint
	Search     string
	SortBy     string
	SortOrder  string
}

// Offset returns the row offset for the filter's page and limit.
func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, f PostFilter) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(ctx).First(&post, id).Error
	return onePost(&post, err)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(ctx).Where("posts.slug = ?", slug).First(&post).Error
	return onePost(&post, err)
}

// List composes the filter into a single query, counts the total match set
// before pagination, then fetches one page with all joins.
func (r *postRepository) List(ctx context.Context, f PostFilter) ([]*models.Post, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.filtered(ctx, f).
		Select(postDetailSelect).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order(orderClause(f.SortBy, f.SortOrder)).
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// filtered builds the WHERE portion shared by the count and page queries.
func (r *postRepository) filtered(ctx context.Context, f PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if f.Status != "" {
		q = q.Where("posts.status = ?", f.Status)
	}
	if f.CategoryID != nil {
		q = q.Where("posts.category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"(posts.title ILIKE ? OR posts.content ILIKE ? OR posts.excerpt ILIKE ?)",
			like, like, like,
		)
	}
	return q
}

func orderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns["createdAt"]
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "ASC") {
		direction = "ASC"
	}
	return column + " " + direction
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Save without touching associations; tag sets are replaced explicitly
	// through ReplaceTags.
	return r.db.WithContext(ctx).Omit("Author", "Category", "Tags").Save(post).Error
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(&tags)
}

// Delete hard-deletes the post along with its comments and tag associations.
// The cascade is explicit so the behavior does not depend on driver-level
// foreign key enforcement.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// IncrementViews bumps the view counter with a single atomic UPDATE, safe
// under concurrent callers.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *postRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Select(postDetailSelect).
		Preload("Author").
		Preload("Category").
		Preload("Tags")
}

func onePost(post *models.Post, err error) (*models.Post, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
