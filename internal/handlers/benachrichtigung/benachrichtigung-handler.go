package benachrichtigung_handlers

import (
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	benachrichtigung_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/benachrichtigung-case"
	"github.com/gofiber/fiber/v2"
)

// BenachrichtigungHandler bedient den Posteingang des angemeldeten Benutzers.
type BenachrichtigungHandler struct {
	service benachrichtigung_case.BenachrichtigungServiceContract
	i18n    internal_i18n.Service
}

func NewBenachrichtigungHandler(service benachrichtigung_case.BenachrichtigungServiceContract, i18n internal_i18n.Service) *BenachrichtigungHandler {
	return &BenachrichtigungHandler{service: service, i18n: i18n}
}

func (h *BenachrichtigungHandler) Inbox(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Inbox(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_inbox", nil, resp)
}

func (h *BenachrichtigungHandler) CountUnread(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.CountUnread(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_unread_count", nil, resp)
}

func (h *BenachrichtigungHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.MarkAllRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_mark_read", nil, resp)
}
