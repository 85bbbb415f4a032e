package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const HeaderRequestID = "X-Request-ID"

// Fremde IDs werden nur übernommen, wenn sie harmlos für Logs sind.
var inboundRequestID = regexp.MustCompile(`^[A-Za-z0-9\-_]{1,64}$`)

// RequestIDMiddleware fügt jeder Anfrage eine eindeutige Anforderungs-ID hinzu ("VM-" + nanoid).
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if !inboundRequestID.MatchString(id) {
			generated, err := gonanoid.New()
			if err != nil {
				return err
			}
			id = "VM-" + generated
		}

		c.Locals("request_id", id)
		c.Set(HeaderRequestID, id)

		return c.Next()
	}
}
