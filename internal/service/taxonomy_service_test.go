package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	listFn      func(context.Context) ([]models.Category, error)
	updateFn    func(context.Context, *models.Category) error
	deleteFn    func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:    func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn:   func(_ context.Context, _ uint) (*models.Category, error) { return nil, nil },
		getBySlugFn: func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		listFn:      func(_ context.Context) ([]models.Category, error) { return nil, nil },
		updateFn:    func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

func TestCategoryService_Create(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		categories := noopCategoryRepo()
		categories.createFn = func(_ context.Context, c *models.Category) error {
			c.ID = 1
			return nil
		}

		svc := NewCategoryService(categories)
		category, err := svc.Create(context.Background(), CategoryInput{Name: "Go", Slug: "go"})
		require.NoError(t, err)
		assert.Equal(t, uint(1), category.ID)
	})

	t.Run("slug exists", func(t *testing.T) {
		t.Parallel()

		categories := noopCategoryRepo()
		categories.getBySlugFn = func(_ context.Context, _ string) (*models.Category, error) {
			return &models.Category{ID: 1, Slug: "go"}, nil
		}

		svc := NewCategoryService(categories)
		_, err := svc.Create(context.Background(), CategoryInput{Name: "Go", Slug: "go"})
		assertConflictError(t, err)
	})

	t.Run("duplicate name race", func(t *testing.T) {
		t.Parallel()

		categories := noopCategoryRepo()
		categories.createFn = func(_ context.Context, _ *models.Category) error {
			return gorm.ErrDuplicatedKey
		}

		svc := NewCategoryService(categories)
		_, err := svc.Create(context.Background(), CategoryInput{Name: "Go", Slug: "go"})
		assertConflictError(t, err)
	})
}

func TestCategoryService_Update(t *testing.T) {
	t.Parallel()

	categories := noopCategoryRepo()
	categories.getByIDFn = func(_ context.Context, id uint) (*models.Category, error) {
		if id == 1 {
			return &models.Category{ID: 1, Name: "Go", Slug: "go"}, nil
		}
		return nil, nil
	}

	svc := NewCategoryService(categories)

	category, err := svc.Update(context.Background(), 1, CategoryInput{Name: "Golang"})
	require.NoError(t, err)
	assert.Equal(t, "Golang", category.Name)
	assert.Equal(t, "go", category.Slug, "slug untouched when not provided")

	_, err = svc.Update(context.Background(), 404, CategoryInput{Name: "X"})
	assertNotFoundError(t, err)
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewCategoryService(noopCategoryRepo())
	assertNotFoundError(t, svc.Delete(context.Background(), 404))
}

func TestTagService_Create(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		tags := noopTagRepo()
		tags.createFn = func(_ context.Context, tag *models.Tag) error {
			tag.ID = 3
			return nil
		}

		svc := NewTagService(tags)
		tag, err := svc.Create(context.Background(), TagInput{Name: "go", Slug: "go"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), tag.ID)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()

		tags := noopTagRepo()
		tags.createFn = func(_ context.Context, _ *models.Tag) error {
			return gorm.ErrDuplicatedKey
		}

		svc := NewTagService(tags)
		_, err := svc.Create(context.Background(), TagInput{Name: "go", Slug: "go"})
		assertConflictError(t, err)
	})
}

func TestTagService_Delete(t *testing.T) {
	t.Parallel()

	tags := noopTagRepo()
	tags.getByIDsFn = func(_ context.Context, ids []uint) ([]models.Tag, error) {
		if len(ids) == 1 && ids[0] == 3 {
			return []models.Tag{{ID: 3}}, nil
		}
		return nil, nil
	}
	deleted := false
	tags.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := NewTagService(tags)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.True(t, deleted)

	assertNotFoundError(t, svc.Delete(context.Background(), 404))
}
