package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /post. The listing scope depends on who is asking:
// anonymous callers and users see all posts, admins only their own.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	identity := s.optionalIdentity(c)

	posts, err := s.postService.ListPosts(c.Context(), identity)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /post/:id. Public by design.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /post. The author is always the verified identity;
// any author id in the request body is ignored.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	identity := identityFromLocals(c)

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), identity, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /post/:id. Title and content replace the stored
// values wholesale; omitting content clears it.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	identity := identityFromLocals(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), identity, id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /post/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	identity := identityFromLocals(c)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), identity, id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
