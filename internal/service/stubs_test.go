package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn          func(context.Context, *models.User) error
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByEmailFn      func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	getLocalByEmailFn func(context.Context, string) (*models.User, error)
	getByGoogleIDFn   func(context.Context, string) (*models.User, error)
	updateFn          func(context.Context, *models.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetLocalByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getLocalByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getByGoogleIDFn(ctx, googleID)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:          func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:         func(_ context.Context, _ uint) (*models.User, error) { return nil, nil },
		getByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getLocalByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByGoogleIDFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		updateFn:          func(_ context.Context, _ *models.User) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	getBySlugFn      func(context.Context, string) (*models.Post, error)
	listFn           func(context.Context, repository.PostFilter) ([]*models.Post, int64, error)
	updateFn         func(context.Context, *models.Post) error
	replaceTagsFn    func(context.Context, *models.Post, []models.Tag) error
	deleteFn         func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context, f repository.PostFilter) ([]*models.Post, int64, error) {
	return s.listFn(ctx, f)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, post, tags)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:        func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil },
		getBySlugFn:      func(_ context.Context, _ string) (*models.Post, error) { return nil, nil },
		listFn:           func(_ context.Context, _ repository.PostFilter) ([]*models.Post, int64, error) { return nil, 0, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		replaceTagsFn:    func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		incrementViewsFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	createFn   func(context.Context, *models.Tag) error
	listFn     func(context.Context) ([]models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	deleteFn   func(context.Context, uint) error
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error { return s.createFn(ctx, tag) }
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error)    { return s.listFn(ctx) }
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:   func(_ context.Context, _ *models.Tag) error { return nil },
		listFn:     func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getByIDsFn: func(_ context.Context, _ []uint) ([]models.Tag, error) { return nil, nil },
		deleteFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment) error
	getByIDFn            func(context.Context, uint) (*models.Comment, error)
	listApprovedByPostFn func(context.Context, uint) ([]models.Comment, error)
	updateStatusFn       func(context.Context, uint, models.CommentStatus) error
	deleteFn             func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listApprovedByPostFn(ctx, postID)
}
func (s *commentRepoStub) UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) error {
	return s.updateStatusFn(ctx, id, status)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:             func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:            func(_ context.Context, _ uint) (*models.Comment, error) { return nil, nil },
		listApprovedByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		updateStatusFn:       func(_ context.Context, _ uint, _ models.CommentStatus) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}
