package server

import (
	"errors"

	"quill/internal/auth"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identityFromLocals returns the identity stored by AuthRequired, or
// Anonymous when the middleware did not run.
func identityFromLocals(c *fiber.Ctx) auth.Identity {
	if identity, ok := c.Locals("identity").(auth.Identity); ok {
		return identity
	}
	return auth.Anonymous
}
