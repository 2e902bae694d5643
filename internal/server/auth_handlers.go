package server

import (
	"time"

	"quill/internal/auth"
	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /register.
// Role defaults to USER; ADMIN must be requested explicitly.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// GetUsers handles GET /register: all registered accounts, safe fields only.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(users)
}

// Login handles POST /login. Unknown email and wrong password produce the
// same 401 response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout handles POST /logout: blacklists the presented token's jti until
// its natural expiry. Requires Redis; without it the token simply ages out.
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*auth.Claims)
	if !ok {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Authorization required"))
	}

	until := claims.ExpiresAt
	if until.IsZero() {
		until = time.Now().Add(s.config.TokenTTL)
	}
	if err := cache.RevokeToken(c.Context(), s.redis, claims.JTI, until); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	observability.TokensRevoked.Inc()

	return c.JSON(fiber.Map{"success": true})
}
