package vorgang_handlers

import (
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	workflow_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/workflow-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VorgangHandler übersetzt HTTP in Workflow-Aufrufe. Berechtigungen prüft der WorkflowService.
type VorgangHandler struct {
	validator *validator.Validate
	service   workflow_case.WorkflowServiceContract
	i18n      internal_i18n.Service
}

func NewVorgangHandler(service workflow_case.WorkflowServiceContract, i18n internal_i18n.Service) *VorgangHandler {
	return &VorgangHandler{
		validator: handlers.NewValidator(vorgang_dto.RegisterValidators),
		service:   service,
		i18n:      i18n,
	}
}

func (h *VorgangHandler) RegisterVorgang(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	var req vorgang_dto.RegisterVorgangRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.Register(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_register_vorgang",
		map[string]any{"label": resp.SequentialLabel}, resp)
}

func (h *VorgangHandler) ListVorgaenge(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	var filter vorgang_dto.VorgangListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_list_vorgaenge", nil, resp)
}

func (h *VorgangHandler) Statistics(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Statistics(c.Context(), actor)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_statistics", nil, resp)
}

func (h *VorgangHandler) MyAssignments(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	var filter vorgang_dto.AssignmentListFilter
	if err := handlers.ParseQuery(c, h.validator, &filter); err != nil {
		return err
	}

	resp, err := h.service.MyAssignments(c.Context(), actor, filter)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_my_assignments", nil, resp,
		map[string]any{"count": len(resp)})
}

func (h *VorgangHandler) GetVorgang(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.Get(c.Context(), actor, vorgangID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_get_vorgang", nil, resp)
}

func (h *VorgangHandler) EditVorgang(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	var req vorgang_dto.EditVorgangRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.Edit(c.Context(), actor, vorgangID, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_edit_vorgang", nil, resp)
}

func (h *VorgangHandler) DeleteVorgang(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.Delete(c.Context(), actor, vorgangID)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_delete_vorgang", nil, resp)
}

// Designate vergibt die Zuweisungen neu. WorkerIDs[i] bekommt TaskTypes[i].
func (h *VorgangHandler) Designate(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	var req vorgang_dto.DesignateRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.Designate(c.Context(), actor, vorgangID, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_designate", nil, resp)
}

func (h *VorgangHandler) UpdateAssignment(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	var req vorgang_dto.UpdateAssignmentRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.UpdateAssignment(c.Context(), actor, vorgangID, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_update_assignment", nil, resp)
}

func (h *VorgangHandler) DeliverAssignment(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}
	vorgangID, err := handlers.GetParamVorgangID(c, h.validator)
	if err != nil {
		return err
	}

	var req vorgang_dto.DeliverRequest
	if err := handlers.ParseBody(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.service.Deliver(c.Context(), actor, vorgangID, req)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusOK, "response.success_deliver", nil, resp)
}
