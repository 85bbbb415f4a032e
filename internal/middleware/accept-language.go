package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AcceptLanguageMiddleware ruft Accept-Language von Header ab und speichert den Wert bei c.Locals
func AcceptLanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAcceptLanguage, "en")
		lang := strings.Split(raw, ",")[0] // z. B. "de-CH,de;q=0.9,en;q=0.8"
		lang = strings.Split(lang, ";")[0]
		lang = strings.ToLower(strings.TrimSpace(strings.Split(lang, "-")[0]))
		if lang == "" || lang == "*" {
			lang = "en"
		}
		c.Locals("lang", lang)
		return c.Next()
	}
}
