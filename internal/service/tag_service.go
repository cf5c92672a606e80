package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

// TagService manages the flat tag vocabulary.
type TagService struct {
	tagRepo repository.TagRepository
}

// TagInput is the payload for creating a tag.
type TagInput struct {
	Name string
	Slug string
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Create stores a new tag. Name and slug are each unique.
func (s *TagService) Create(ctx context.Context, in TagInput) (*models.Tag, error) {
	tag := &models.Tag{Name: in.Name, Slug: in.Slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Tag name or slug already exists")
		}
		return nil, models.NewInternalError(err)
	}
	return tag, nil
}

// List returns all tags.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// Delete removes a tag and detaches it from every post.
func (s *TagService) Delete(ctx context.Context, id uint) error {
	tags, err := s.tagRepo.GetByIDs(ctx, []uint{id})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(tags) == 0 {
		return models.NewNotFoundError("Tag", id)
	}
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
