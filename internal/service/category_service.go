package service

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/gorm"
)

// CategoryService manages the category taxonomy.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create stores a new category. Name and slug are each unique.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	existing, err := s.categoryRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Category slug already exists")
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Category name or slug already exists")
		}
		return nil, models.NewInternalError(err)
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// Get fetches a category by ID.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", id)
	}
	return category, nil
}

// Update applies a partial update to a category.
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("Category", id)
	}

	if in.Slug != "" && in.Slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(ctx, in.Slug)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if existing != nil && existing.ID != id {
			return nil, models.NewConflictError("Category slug already exists")
		}
		category.Slug = in.Slug
	}
	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != nil {
		category.Description = in.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Category name or slug already exists")
		}
		return nil, models.NewInternalError(err)
	}
	return category, nil
}

// Delete removes a category; posts referencing it keep existing with a null
// category.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if category == nil {
		return models.NewNotFoundError("Category", id)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
