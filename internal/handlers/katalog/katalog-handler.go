package katalog_handlers

import (
	katalog_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/katalog-dto"
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	katalog_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/katalog-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// KatalogHandler: Lesen für alle Angemeldeten, Schreiben nur mit CapManageCatalog (Router).
type KatalogHandler struct {
	validator *validator.Validate
	service   katalog_case.KatalogServiceContract
	i18n      internal_i18n.Service
}

func NewKatalogHandler(service katalog_case.KatalogServiceContract, i18n internal_i18n.Service) *KatalogHandler {
	return &KatalogHandler{
		validator: handlers.NewValidator(),
		service:   service,
		i18n:      i18n,
	}
}

func (h *KatalogHandler) ListPfarreien(c *fiber.Ctx) error {
	resp, err := h.service.ListPfarreien(c.Context())
	if err != nil {
		return err
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_pfarreien", nil, resp)
}

func (h *KatalogHandler) LookupCanton(c *fiber.Ctx) error {
	var param katalog_dto.ParamPfarrei
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	canton, err := h.service.LookupCanton(c.Context(), param.Name)
	if err != nil {
		return err
	}

	resp := katalog_dto.CantonResponse{Parish: param.Name, Canton: canton}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_lookup_canton", nil, resp)
}

func (h *KatalogHandler) UpsertPfarrei(c *fiber.Ctx) error {
	var req katalog_dto.UpsertPfarreiRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.UpsertPfarrei(c.Context(), req)
	if err != nil {
		return err
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_upsert_pfarrei", nil, resp)
}

func (h *KatalogHandler) ListTaetigkeiten(c *fiber.Ctx) error {
	resp, err := h.service.ListTaetigkeiten(c.Context())
	if err != nil {
		return err
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_taetigkeiten", nil, resp)
}

func (h *KatalogHandler) CreateTaetigkeit(c *fiber.Ctx) error {
	var req katalog_dto.CreateTaetigkeitRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.CreateTaetigkeit(c.Context(), req)
	if err != nil {
		return err
	}
	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_create_taetigkeit", nil, resp)
}

func (h *KatalogHandler) DeleteTaetigkeit(c *fiber.Ctx) error {
	var param katalog_dto.ParamTaetigkeit
	if err := handlers.ParseParams(c, h.validator, &param); err != nil {
		return err
	}

	if err := h.service.DeleteTaetigkeit(c.Context(), param.Name); err != nil {
		return err
	}
	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_taetigkeit", nil, "OK")
}
