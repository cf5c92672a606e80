package server

import (
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title         string            `json:"title"`
		Slug          string            `json:"slug"`
		Content       string            `json:"content"`
		Excerpt       *string           `json:"excerpt"`
		FeaturedImage *string           `json:"featured_image"`
		Status        models.PostStatus `json:"status"`
		CategoryID    *uint             `json:"category_id"`
		TagIDs        []uint            `json:"tag_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Slug == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title, slug, and content are required"))
	}
	if err := validation.ValidateSlug(req.Slug); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.postService.Create(c.Context(), service.CreatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
		AuthorID:      currentUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.PostsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	result, err := s.postService.List(c.Context(), s.listInput(c, c.Query("status")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetPublishedPosts handles GET /api/posts/published
func (s *Server) GetPublishedPosts(c *fiber.Ctx) error {
	result, err := s.postService.List(c.Context(),
		s.listInput(c, string(models.PostStatusPublished)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// SearchPosts handles GET /api/posts/search
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	in := s.listInput(c, c.Query("status"))
	in.Search = query
	result, err := s.postService.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// listInput parses the shared listing query parameters.
func (s *Server) listInput(c *fiber.Ctx, status string) service.ListPostsInput {
	return service.ListPostsInput{
		Page:       c.QueryInt("page", 0),
		Limit:      c.QueryInt("limit", 0),
		Status:     status,
		CategoryID: queryUintPtr(c, "category_id"),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, svcErr := s.postService.FindOne(c.Context(), id)
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(post)
}

// GetPostBySlug handles GET /api/posts/slug/:slug
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := s.postService.FindBySlug(c.Context(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         *string            `json:"title"`
		Slug          *string            `json:"slug"`
		Content       *string            `json:"content"`
		Excerpt       *string            `json:"excerpt"`
		FeaturedImage *string            `json:"featured_image"`
		Status        *models.PostStatus `json:"status"`
		CategoryID    *uint              `json:"category_id"`
		TagIDs        *[]uint            `json:"tag_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Slug != nil {
		if err := validation.ValidateSlug(*req.Slug); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	post, svcErr := s.postService.Update(c.Context(), id, currentUserID(c), service.UpdatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
	})
	if svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.Remove(c.Context(), id, currentUserID(c)); svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPostView handles POST /api/posts/:id/views
func (s *Server) AddPostView(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.postService.IncrementViews(c.Context(), id); svcErr != nil {
		return respondError(c, svcErr)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
