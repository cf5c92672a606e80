package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// CommentService handles anonymous comment submission and moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput is the payload for submitting a comment.
type CreateCommentInput struct {
	PostID        uint
	Content       string
	AuthorName    string
	AuthorEmail   string
	AuthorWebsite *string
	ParentID      *uint
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create submits a comment in pending state. A reply must target a comment on
// the same post.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if parent == nil {
			return nil, models.NewNotFoundError("Comment", *in.ParentID)
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:       in.Content,
		AuthorName:    in.AuthorName,
		AuthorEmail:   in.AuthorEmail,
		AuthorWebsite: in.AuthorWebsite,
		Status:        models.CommentStatusPending,
		PostID:        in.PostID,
		ParentID:      in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListApproved returns the approved top-level comments of a post with their
// approved replies.
func (s *CommentService) ListApproved(ctx context.Context, postID uint) ([]models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListApprovedByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// Moderate sets the moderation status of a comment.
func (s *CommentService) Moderate(ctx context.Context, id uint, status models.CommentStatus) (*models.Comment, error) {
	if !models.ValidCommentStatus(status) {
		return nil, models.NewValidationError("Invalid status")
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", id)
	}

	if err := s.commentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, models.NewInternalError(err)
	}
	comment.Status = status
	return comment, nil
}

// Delete removes a comment and its replies.
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return models.NewInternalError(err)
	}
	if comment == nil {
		return models.NewNotFoundError("Comment", id)
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
