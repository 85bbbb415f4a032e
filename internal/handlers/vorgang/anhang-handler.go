package vorgang_handlers

import (
	"fmt"
	"path/filepath"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/attachment"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

const formFieldFile = "file"

type uploadResponse struct {
	Ref string `json:"ref"`
}

// UploadAttachment nimmt genau eine Datei im Multipart-Feld "file" an und liefert die Referenz,
// die später als handover_reference oder handover_record eingetragen wird.
func (h *VorgangHandler) UploadAttachment(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	fh, formErr := c.FormFile(formFieldFile)
	if formErr != nil {
		return app_errors.NewFieldValidationError(formFieldFile, "required", "validation.required")
	}

	f, openErr := fh.Open()
	if openErr != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", openErr)
	}
	defer f.Close()

	ref, err := h.service.UploadAttachment(c.Context(), actor, fh.Filename, f)
	if err != nil {
		return err
	}

	return handlers.Respond(c, h.i18n, fiber.StatusCreated, "response.success_upload_attachment", nil, uploadResponse{Ref: ref})
}

func (h *VorgangHandler) DownloadAttachment(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	ref := c.Params("ref")
	if !attachment.ValidRef(ref) {
		return app_errors.NewNotFoundError("attachment.not_found")
	}

	rc, err := h.service.OpenAttachment(c.Context(), actor, ref)
	if err != nil {
		return err
	}

	// fasthttp schließt rc nach dem Senden
	if ext := filepath.Ext(ref); ext != "" {
		c.Type(ext)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, ref))
	return c.SendStream(rc)
}
