package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:id/comments. Comments are anonymous
// and enter the moderation queue in pending state.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content       string  `json:"content"`
		AuthorName    string  `json:"author_name"`
		AuthorEmail   string  `json:"author_email"`
		AuthorWebsite *string `json:"author_website"`
		ParentID      *uint   `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" || req.AuthorName == "" || req.AuthorEmail == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content, author name, and author email are required"))
	}
	if err := validation.ValidateEmail(req.AuthorEmail); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	comment, svcErr := s.commentService.Create(c.Context(), service.CreateCommentInput{
		PostID:        postID,
		Content:       req.Content,
		AuthorName:    req.AuthorName,
		AuthorEmail:   req.AuthorEmail,
		AuthorWebsite: req.AuthorWebsite,
		ParentID:      req.ParentID,
	})
	if svcErr != nil {
		return respondError(c, svcErr)
	}

	middleware.CommentsSubmitted.Inc()
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments. Only approved comments
// are visible.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, svcErr := s.commentService.ListApproved(c.Context(), postID)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(comments)
}

// ModerateComment handles PATCH /api/comments/:id/status
func (s *Server) ModerateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.CommentStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, svcErr := s.commentService.Moderate(c.Context(), id, req.Status)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.commentService.Delete(c.Context(), id); svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
