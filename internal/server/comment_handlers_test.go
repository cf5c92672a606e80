package server

import (
	"fmt"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register("moderator", "moderator@example.com")
	post := env.createPost(auth.AccessToken, fiber.Map{
		"title": "Discussed", "slug": "discussed", "content": "body", "status": "published",
	})

	commentsPath := fmt.Sprintf("/api/posts/%d/comments", post.ID)

	var first models.Comment

	t.Run("create starts pending", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, commentsPath, fiber.Map{
			"content":      "Great read!",
			"author_name":  "Visitor",
			"author_email": "visitor@example.com",
		}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		env.decode(resp, &first)
		assert.Equal(t, models.CommentStatusPending, first.Status)
	})

	t.Run("input validation", func(t *testing.T) {
		bodies := []fiber.Map{
			{"author_name": "Visitor", "author_email": "visitor@example.com"},      // no content
			{"content": "hi", "author_email": "visitor@example.com"},               // no name
			{"content": "hi", "author_name": "Visitor", "author_email": "not-ok"}, // bad email
		}
		for _, body := range bodies {
			resp := env.request(fiber.MethodPost, commentsPath, body, "")
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body: %v", body)
		}
	})

	t.Run("unknown post", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/posts/99999/comments", fiber.Map{
			"content":      "hello?",
			"author_name":  "Visitor",
			"author_email": "visitor@example.com",
		}, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("pending comments hidden from listing", func(t *testing.T) {
		resp := env.request(fiber.MethodGet, commentsPath, nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var comments []*models.Comment
		env.decode(resp, &comments)
		assert.Empty(t, comments)
	})

	t.Run("moderation requires auth", func(t *testing.T) {
		resp := env.request(fiber.MethodPatch, fmt.Sprintf("/api/comments/%d/status", first.ID), fiber.Map{
			"status": "approved",
		}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("approve surfaces the comment", func(t *testing.T) {
		resp := env.request(fiber.MethodPatch, fmt.Sprintf("/api/comments/%d/status", first.ID), fiber.Map{
			"status": "approved",
		}, auth.AccessToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out models.Comment
		env.decode(resp, &out)
		assert.Equal(t, models.CommentStatusApproved, out.Status)

		listResp := env.request(fiber.MethodGet, commentsPath, nil, "")
		var comments []*models.Comment
		env.decode(listResp, &comments)
		require.Len(t, comments, 1)
		assert.Equal(t, "Great read!", comments[0].Content)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		resp := env.request(fiber.MethodPatch, fmt.Sprintf("/api/comments/%d/status", first.ID), fiber.Map{
			"status": "banana",
		}, auth.AccessToken)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reply must target same post", func(t *testing.T) {
		other := env.createPost(auth.AccessToken, fiber.Map{
			"title": "Elsewhere", "slug": "elsewhere", "content": "body",
		})
		resp := env.request(fiber.MethodPost, fmt.Sprintf("/api/posts/%d/comments", other.ID), fiber.Map{
			"content":      "replying in the wrong thread",
			"author_name":  "Visitor",
			"author_email": "visitor@example.com",
			"parent_id":    first.ID,
		}, "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("reply to approved comment", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, commentsPath, fiber.Map{
			"content":      "agreed",
			"author_name":  "Another",
			"author_email": "another@example.com",
			"parent_id":    first.ID,
		}, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var reply models.Comment
		env.decode(resp, &reply)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, first.ID, *reply.ParentID)
	})

	t.Run("delete requires auth", func(t *testing.T) {
		resp := env.request(fiber.MethodDelete, fmt.Sprintf("/api/comments/%d", first.ID), nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp := env.request(fiber.MethodDelete, fmt.Sprintf("/api/comments/%d", first.ID), nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp = env.request(fiber.MethodDelete, fmt.Sprintf("/api/comments/%d", first.ID), nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
