package routers

import (
	vorgang_handlers "github.com/Xenn-00/vorgang-meister/internal/handlers/vorgang"
	"github.com/gofiber/fiber/v2"
)

// VorgangRouter: die Capabilities prüft der WorkflowService, hier genügt die Session.
// Die festen Pfade stehen vor /:vorgang_id.
func VorgangRouter(api fiber.Router, c *Container, auth fiber.Handler) {
	h := vorgang_handlers.NewVorgangHandler(c.Workflow, c.I18n)

	r := api.Group("/vorgaenge", auth)
	r.Post("/", h.RegisterVorgang)
	r.Get("/", h.ListVorgaenge)
	r.Get("/statistik", h.Statistics)
	r.Get("/meine-zuweisungen", h.MyAssignments)
	r.Get("/:vorgang_id", h.GetVorgang)
	r.Patch("/:vorgang_id", h.EditVorgang)
	r.Delete("/:vorgang_id", h.DeleteVorgang)
	r.Post("/:vorgang_id/designieren", h.Designate)
	r.Patch("/:vorgang_id/zuweisung", h.UpdateAssignment)
	r.Post("/:vorgang_id/zuweisung/abgeben", h.DeliverAssignment)

	a := api.Group("/anhaenge", auth)
	a.Post("/", h.UploadAttachment)
	a.Get("/:ref", h.DownloadAttachment)
}
