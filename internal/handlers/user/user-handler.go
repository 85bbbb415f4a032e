package user_handlers

import (
	user_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	user_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/user-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	validator *validator.Validate
	service   user_case.UserServiceContract
	i18n      internal_i18n.Service
}

// Geschützt mit SessionMiddleware
func NewUserHandler(service user_case.UserServiceContract, i18n internal_i18n.Service) *UserHandler {
	return &UserHandler{
		validator: handlers.NewValidator(user_dto.RegisterValidators),
		service:   service,
		i18n:      i18n,
	}
}

func (h *UserHandler) FetchUserSelfProfile(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UserSelfProfile(c.Context(), userID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_self", nil, resp)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := handlers.GetUserID(c)
	if err != nil {
		return err
	}

	var req user_dto.ChangePasswordRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Context(), userID, req); err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_change_password", nil, "OK")
}

// ListUsers filtert optional nach ?role=, z. B. für die Auswahl der Techniker beim Designieren.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var filter user_dto.UserListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.ListUsers(c.Context(), filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_users", nil, resp,
		map[string]any{"count": len(resp)})
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req user_dto.CreateUserRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.CreateUser(c.Context(), req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_user", nil, resp)
}
