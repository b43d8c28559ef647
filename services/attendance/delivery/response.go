package delivery

import (
	"errors"

	"attendance/domain"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps the domain error taxonomy to HTTP codes. Conflicts render
// as 400 with the human-readable message, matching the browser-facing flows.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// errMessage keeps raw store errors out of responses; taxonomy errors carry
// curated messages, everything else collapses to a generic one.
func errMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrInvalidInput, domain.ErrConflict, domain.ErrUnauthorized,
		domain.ErrForbidden, domain.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err.Error()
		}
	}
	return "Internal server error"
}

func actorFrom(c *fiber.Ctx) *domain.User {
	actor, _ := c.Locals("user").(*domain.User)
	return actor
}

func actorEmail(c *fiber.Ctx) *string {
	if actor := actorFrom(c); actor != nil {
		return &actor.Email
	}
	return nil
}
