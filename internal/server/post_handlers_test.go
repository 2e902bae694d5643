package server

import (
	"fmt"
	"net/http"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "reader@x.com", "pw1", "")
	adminToken := ts.login(t, "admin@x.com", "pw1")
	readerToken := ts.login(t, "reader@x.com", "pw1")

	t.Run("admin creates a post", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/post/", adminToken, fiber.Map{
			"title":   "T",
			"content": "C",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, "T", post.Title)
		assert.Equal(t, "C", post.Content)
		assert.NotZero(t, post.AuthorID)
		assert.Equal(t, "admin@x.com", post.Author.Email)
	})

	t.Run("author comes from the token, not the body", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/post/", adminToken, fiber.Map{
			"title":    "spoofed",
			"authorId": 999,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, "admin@x.com", post.Author.Email)
		assert.NotEqual(t, uint(999), post.AuthorID)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/post/", "", fiber.Map{"title": "T"})
		assertErrorCode(t, resp, http.StatusUnauthorized, models.CodeUnauthenticated)
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/post/", readerToken, fiber.Map{"title": "T"})
		assertErrorCode(t, resp, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("empty title is a validation error", func(t *testing.T) {
		resp := ts.request(t, http.MethodPost, "/post/", adminToken, fiber.Map{"content": "C"})
		assertErrorCode(t, resp, http.StatusBadRequest, models.CodeValidation)
	})
}

func TestListPostsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin1@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "admin2@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "reader@x.com", "pw1", "")
	token1 := ts.login(t, "admin1@x.com", "pw1")
	token2 := ts.login(t, "admin2@x.com", "pw1")
	readerToken := ts.login(t, "reader@x.com", "pw1")

	resp := ts.request(t, http.MethodPost, "/post/", token1, fiber.Map{"title": "by admin1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ts.request(t, http.MethodPost, "/post/", token2, fiber.Map{"title": "by admin2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listTitles := func(t *testing.T, token string) []string {
		resp := ts.request(t, http.MethodGet, "/post/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []models.Post
		decodeJSON(t, resp, &posts)
		titles := make([]string, len(posts))
		for i, p := range posts {
			titles[i] = p.Title
		}
		return titles
	}

	t.Run("anonymous sees all posts", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"by admin1", "by admin2"}, listTitles(t, ""))
	})

	t.Run("user sees all posts", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"by admin1", "by admin2"}, listTitles(t, readerToken))
	})

	t.Run("admin sees only their own posts", func(t *testing.T) {
		assert.Equal(t, []string{"by admin1"}, listTitles(t, token1))
		assert.Equal(t, []string{"by admin2"}, listTitles(t, token2))
	})
}

func TestGetPostEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin@x.com", "pw1", models.RoleAdmin)
	token := ts.login(t, "admin@x.com", "pw1")

	resp := ts.request(t, http.MethodPost, "/post/", token, fiber.Map{"title": "T", "content": "C"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeJSON(t, resp, &created)

	t.Run("public read", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, fmt.Sprintf("/post/%d", created.ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, created.ID, post.ID)
		assert.Equal(t, "T", post.Title)
		assert.Equal(t, "admin@x.com", post.Author.Email)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/post/9999", "", nil)
		assertErrorCode(t, resp, http.StatusNotFound, models.CodeNotFound)
	})

	t.Run("non-numeric id is a validation error", func(t *testing.T) {
		resp := ts.request(t, http.MethodGet, "/post/abc", "", nil)
		assertErrorCode(t, resp, http.StatusBadRequest, models.CodeValidation)
	})
}

func TestUpdatePostEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "editor@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "reader@x.com", "pw1", "")
	ownerToken := ts.login(t, "admin@x.com", "pw1")
	editorToken := ts.login(t, "editor@x.com", "pw1")
	readerToken := ts.login(t, "reader@x.com", "pw1")

	resp := ts.request(t, http.MethodPost, "/post/", ownerToken, fiber.Map{"title": "Hello", "content": "World"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeJSON(t, resp, &created)
	path := fmt.Sprintf("/post/%d", created.ID)

	t.Run("replaces title and content wholesale", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, path, ownerToken, fiber.Map{"title": "Hi"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, "Hi", post.Title)
		assert.Empty(t, post.Content, "omitted content clears the stored value")
	})

	t.Run("any admin may edit any post", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, path, editorToken, fiber.Map{"title": "Edited", "content": "x"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, "Edited", post.Title)
		assert.Equal(t, created.AuthorID, post.AuthorID, "authorId never changes on update")
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, path, "", fiber.Map{"title": "X"})
		assertErrorCode(t, resp, http.StatusUnauthorized, models.CodeUnauthenticated)
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, path, readerToken, fiber.Map{"title": "X"})
		assertErrorCode(t, resp, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		resp := ts.request(t, http.MethodPut, "/post/9999", ownerToken, fiber.Map{"title": "X"})
		assertErrorCode(t, resp, http.StatusNotFound, models.CodeNotFound)
	})
}

func TestDeletePostEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "admin@x.com", "pw1", models.RoleAdmin)
	ts.register(t, "reader@x.com", "pw1", "")
	adminToken := ts.login(t, "admin@x.com", "pw1")
	readerToken := ts.login(t, "reader@x.com", "pw1")

	resp := ts.request(t, http.MethodPost, "/post/", adminToken, fiber.Map{"title": "T"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Post
	decodeJSON(t, resp, &created)
	path := fmt.Sprintf("/post/%d", created.ID)

	t.Run("user role is forbidden", func(t *testing.T) {
		resp := ts.request(t, http.MethodDelete, path, readerToken, nil)
		assertErrorCode(t, resp, http.StatusForbidden, models.CodeForbidden)
	})

	t.Run("admin deletes", func(t *testing.T) {
		resp := ts.request(t, http.MethodDelete, path, adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
		}
		decodeJSON(t, resp, &body)
		assert.True(t, body.Success)
	})

	t.Run("delete is not idempotent", func(t *testing.T) {
		resp := ts.request(t, http.MethodDelete, path, adminToken, nil)
		assertErrorCode(t, resp, http.StatusNotFound, models.CodeNotFound)
	})
}
