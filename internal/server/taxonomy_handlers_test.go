package server

import (
	"fmt"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register("curator", "curator@example.com")

	var created models.Category

	t.Run("create requires auth", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/categories", fiber.Map{
			"name": "Go", "slug": "go",
		}, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("create", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/categories", fiber.Map{
			"name":        "Go",
			"slug":        "go",
			"description": "Posts about Go",
		}, auth.AccessToken)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		env.decode(resp, &created)
		assert.Equal(t, "Go", created.Name)
		assert.Equal(t, "go", created.Slug)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/categories", fiber.Map{
			"name": "Golang", "slug": "go",
		}, auth.AccessToken)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("list is public", func(t *testing.T) {
		resp := env.request(fiber.MethodGet, "/api/categories", nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var categories []*models.Category
		env.decode(resp, &categories)
		assert.Len(t, categories, 1)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := env.request(fiber.MethodGet, fmt.Sprintf("/api/categories/%d", created.ID), nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out models.Category
		env.decode(resp, &out)
		assert.Equal(t, created.ID, out.ID)
	})

	t.Run("update partial", func(t *testing.T) {
		resp := env.request(fiber.MethodPatch, fmt.Sprintf("/api/categories/%d", created.ID), fiber.Map{
			"name": "Go Programming",
		}, auth.AccessToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out models.Category
		env.decode(resp, &out)
		assert.Equal(t, "Go Programming", out.Name)
		assert.Equal(t, "go", out.Slug)
	})

	t.Run("delete detaches posts", func(t *testing.T) {
		post := env.createPost(auth.AccessToken, fiber.Map{
			"title": "Categorized", "slug": "categorized", "content": "body",
			"category_id": created.ID,
		})
		require.NotNil(t, post.Category)

		resp := env.request(fiber.MethodDelete, fmt.Sprintf("/api/categories/%d", created.ID), nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		var reloaded models.Post
		require.NoError(t, env.db.First(&reloaded, post.ID).Error)
		assert.Nil(t, reloaded.CategoryID)
	})

	t.Run("delete missing", func(t *testing.T) {
		resp := env.request(fiber.MethodDelete, "/api/categories/99999", nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)
	auth := env.register("tagger", "tagger@example.com")

	var created models.Tag

	t.Run("create", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/tags", fiber.Map{
			"name": "Tutorial", "slug": "tutorial",
		}, auth.AccessToken)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		env.decode(resp, &created)
		assert.Equal(t, "tutorial", created.Slug)
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		resp := env.request(fiber.MethodPost, "/api/tags", fiber.Map{
			"name": "Tutorial", "slug": "tutorial",
		}, auth.AccessToken)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("list is public", func(t *testing.T) {
		resp := env.request(fiber.MethodGet, "/api/tags", nil, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tags []*models.Tag
		env.decode(resp, &tags)
		assert.Len(t, tags, 1)
	})

	t.Run("attach to post and clear", func(t *testing.T) {
		post := env.createPost(auth.AccessToken, fiber.Map{
			"title": "Tagged", "slug": "tagged", "content": "body",
			"tag_ids": []uint{created.ID},
		})
		require.Len(t, post.Tags, 1)

		resp := env.request(fiber.MethodPatch, fmt.Sprintf("/api/posts/%d", post.ID), fiber.Map{
			"tag_ids": []uint{},
		}, auth.AccessToken)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out models.PostResponse
		env.decode(resp, &out)
		assert.Empty(t, out.Tags)
	})

	t.Run("delete", func(t *testing.T) {
		resp := env.request(fiber.MethodDelete, fmt.Sprintf("/api/tags/%d", created.ID), nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

		resp = env.request(fiber.MethodDelete, fmt.Sprintf("/api/tags/%d", created.ID), nil, auth.AccessToken)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
