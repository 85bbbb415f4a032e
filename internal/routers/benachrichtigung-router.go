package routers

import (
	benachrichtigung_handlers "github.com/Xenn-00/vorgang-meister/internal/handlers/benachrichtigung"
	"github.com/gofiber/fiber/v2"
)

func BenachrichtigungRouter(api fiber.Router, c *Container, auth fiber.Handler) {
	r := api.Group("/benachrichtigungen", auth)
	h := benachrichtigung_handlers.NewBenachrichtigungHandler(c.Benachrichtigungen, c.I18n)

	r.Get("/", h.Inbox)
	r.Get("/anzahl", h.CountUnread)
	r.Post("/gelesen", h.MarkAllRead)
}
