package service

import (
	"context"
	"errors"
	"time"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// PostService implements post lifecycle, listing and view accounting.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title         string
	Slug          string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Status        models.PostStatus
	CategoryID    *uint
	TagIDs        []uint
	AuthorID      uint
}

// UpdatePostInput carries a partial update; nil fields are left unchanged.
// TagIDs distinguishes "absent" (nil, keep tags) from "empty" (clear tags).
type UpdatePostInput struct {
	Title         *string
	Slug          *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Status        *models.PostStatus
	CategoryID    *uint
	TagIDs        *[]uint
}

// ListPostsInput is the raw listing criteria as parsed from the request.
type ListPostsInput struct {
	Page       int
	Limit      int
	Status     string
	CategoryID *uint
	Search     string
	SortBy     string
	SortOrder  string
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{postRepo: postRepo, tagRepo: tagRepo}
}

// Create validates the slug and status, resolves tags, stamps PublishedAt when
// the post is born published, and stores the post.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.PostResponse, error) {
	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	existing, err := s.postRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewValidationError("Slug already exists")
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:         in.Title,
		Slug:          in.Slug,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		AuthorID:      in.AuthorID,
		CategoryID:    in.CategoryID,
		Tags:          tags,
	}
	if status == models.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("Slug already exists")
		}
		return nil, models.NewInternalError(err)
	}

	return s.reload(ctx, post.ID)
}

// List returns one page of posts matching the filter, wrapped in the shared
// pagination envelope.
func (s *PostService) List(ctx context.Context, in ListPostsInput) (*models.PaginatedPosts, error) {
	if in.Status != "" && !models.ValidPostStatus(models.PostStatus(in.Status)) {
		return nil, models.NewValidationError("Invalid status")
	}

	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	posts, total, err := s.postRepo.List(ctx, repository.PostFilter{
		Page:       page,
		Limit:      limit,
		Status:     models.PostStatus(in.Status),
		CategoryID: in.CategoryID,
		Search:     in.Search,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	data := make([]*models.PostResponse, 0, len(posts))
	for _, p := range posts {
		data = append(data, p.ToResponse())
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginatedPosts{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// FindOne fetches a post by ID. Every single-post read counts as a view.
func (s *PostService) FindOne(ctx context.Context, id uint) (*models.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return s.countView(ctx, post)
}

// FindBySlug fetches a post by its slug, counting the view.
func (s *PostService) FindBySlug(ctx context.Context, slug string) (*models.PostResponse, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundMessageError("Post with slug " + slug + " not found")
	}
	return s.countView(ctx, post)
}

// countView bumps the view counter and returns the post with the counter the
// caller just caused.
func (s *PostService) countView(ctx context.Context, post *models.Post) (*models.PostResponse, error) {
	if err := s.postRepo.IncrementViews(ctx, post.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	post.ViewsCount++
	return post.ToResponse(), nil
}

// Update applies a partial update after verifying ownership. PublishedAt is
// stamped on the first transition to published and preserved afterwards.
func (s *PostService) Update(ctx context.Context, id uint, authorID uint, in UpdatePostInput) (*models.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	if post.AuthorID != authorID {
		return nil, models.NewValidationError("You can only update your own posts")
	}

	if in.Slug != nil && *in.Slug != post.Slug {
		existing, err := s.postRepo.GetBySlug(ctx, *in.Slug)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewValidationError("Slug already exists")
		}
		post.Slug = *in.Slug
	}

	if in.Status != nil {
		if !models.ValidPostStatus(*in.Status) {
			return nil, models.NewValidationError("Invalid status")
		}
		if *in.Status == models.PostStatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *in.Status
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = in.Excerpt
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = in.FeaturedImage
	}
	if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewValidationError("Slug already exists")
		}
		return nil, models.NewInternalError(err)
	}

	if in.TagIDs != nil {
		tags, err := s.resolveTags(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return s.reload(ctx, id)
}

// Remove deletes a post, its comments and its tag associations after
// verifying ownership.
func (s *PostService) Remove(ctx context.Context, id uint, authorID uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if post == nil {
		return models.NewNotFoundError("Post", id)
	}
	if post.AuthorID != authorID {
		return models.NewValidationError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IncrementViews bumps the view counter for an existing post.
func (s *PostService) IncrementViews(ctx context.Context, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if post == nil {
		return models.NewNotFoundError("Post", id)
	}
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// resolveTags loads the tags for the given IDs. Unknown IDs are silently
// dropped rather than rejected.
func (s *PostService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// reload fetches the post with all joins so every write path returns the same
// projection as the read paths.
func (s *PostService) reload(ctx context.Context, id uint) (*models.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post.ToResponse(), nil
}
