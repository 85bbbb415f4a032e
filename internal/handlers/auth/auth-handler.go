package auth_handlers

import (
	auth_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/auth-dto"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	auth_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/auth-case"
	session_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/session-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	validator *validator.Validate
	service   auth_case.AuthServiceContract
	sessions  session_case.SessionServiceContract
	i18n      internal_i18n.Service
}

func NewAuthHandler(service auth_case.AuthServiceContract, sessions session_case.SessionServiceContract, i18n internal_i18n.Service) *AuthHandler {
	return &AuthHandler{
		validator: handlers.NewValidator(),
		service:   service,
		sessions:  sessions,
		i18n:      i18n,
	}
}

// LoginUser behandelt die Anmeldung eines Benutzers. Eine bestehende Session des Benutzers wird dabei ersetzt.
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req auth_dto.LoginUserRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	ua := c.Get(fiber.HeaderUserAgent)
	device := c.Get("X-Device-Name")
	if device == "" {
		device = detectDeviceType(ua)
	}

	loginMetadata := auth_dto.LoginMetadata{
		UserAgent: ua,
		Device:    device,
		IP:        c.IP(),
	}

	resp, err := h.service.LoginUser(c.Context(), req, loginMetadata)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_login", nil, resp)
}

// LogoutUser beendet die aktuelle Session. Erwartet "user_id" und "jti" aus der SessionMiddleware.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}
	jti, ok := c.Locals("jti").(string)
	if !ok || jti == "" {
		return app_errors.NewAuthenticationError("auth.unauthorized")
	}

	if err := h.service.LogoutUser(c.Context(), userID, jti); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_logout", nil, "OK")
}

// Heartbeat: die SessionMiddleware hat die Session bereits verlängert. Hier wird nur das
// Token erneuert, damit ein aktiver Client nicht an dessen fester Laufzeit scheitert.
func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	jti, ok := c.Locals("jti").(string)
	if !ok || jti == "" {
		return app_errors.NewAuthenticationError("auth.unauthorized")
	}

	renewed, err := h.service.RenewToken(c.Context(), actor, jti)
	if err != nil {
		return err
	}

	resp := auth_dto.HeartbeatResponse{
		RemainingSeconds: int64(h.sessions.IdleTimeout().Seconds()),
		LastActivity:     c.Context().Time().UTC(),
		Token:            renewed.Token,
		ExpiresAt:        renewed.ExpiresAt,
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_heartbeat", nil, resp)
}
