package middleware

import (
	"errors"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandlerMiddleware behandelt Fehler, die während der Anfrageverarbeitung auftreten.
func ErrorHandlerMiddleware(i18nSvc internal_i18n.Service) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang, _ := c.Locals("lang").(string)
		if lang == "" {
			lang = "en"
		}

		appErr := toAppError(err)
		message := i18nSvc.T(lang, appErr.MessageKey, nil)

		reqID, _ := c.Locals("request_id").(string)

		respErr := fiber.Map{
			"code":       appErr.Code,
			"type":       appErr.Type,
			"message":    message,
			"request_id": reqID,
		}

		if len(appErr.Details) > 0 {
			var details []fiber.Map

			for _, d := range appErr.Details {
				details = append(details, fiber.Map{
					"field":  d.Field,
					"reason": d.Reason,
					"message": i18nSvc.T(
						lang,
						d.MessageKey,
						d.Params,
					),
				})
			}

			respErr["details"] = details
		}

		if appErr.Code >= fiber.StatusInternalServerError {
			log.Error().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("application error")
		} else if appErr.Err != nil {
			log.Debug().Err(appErr.Err).Str("request_id", reqID).Str("type", appErr.Type).Msg("application error")
		}

		return c.Status(appErr.Code).JSON(fiber.Map{
			"status": "error",
			"error":  respErr,
		})
	}
}

// toAppError bildet auch Fehler von Fiber selbst (unbekannte Route, zu großer Body) ab.
func toAppError(err error) *app_errors.AppError {
	var appErr *app_errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return app_errors.NewAppError(fe.Code, app_errors.ErrNotFound, "not_found", err)
		case fiber.StatusTooManyRequests:
			return app_errors.NewAppError(fe.Code, app_errors.ErrRateLimited, "request.too_many_requests", err)
		}
		if fe.Code < fiber.StatusInternalServerError {
			return app_errors.NewAppError(fe.Code, app_errors.ErrInvalidBody, "request.rejected", err)
		}
	}

	return app_errors.NewAppError(
		fiber.StatusInternalServerError,
		app_errors.ErrInternal,
		"internal_error",
		err,
	)
}
