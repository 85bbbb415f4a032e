package middleware

import (
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// RequireCapability lässt die Anfrage nur durch, wenn die Rolle des Actors cap besitzt.
// Muss nach SessionMiddleware hängen.
func RequireCapability(cap entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(LocalActor).(*entity.Actor)
		if !ok || actor == nil {
			return app_errors.NewAuthenticationError("auth.unauthorized")
		}

		if !actor.Role.Can(cap) {
			return app_errors.NewForbiddenError("auth.forbidden")
		}
		return c.Next()
	}
}
