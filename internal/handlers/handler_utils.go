package handlers

import (
	"github.com/Xenn-00/vorgang-meister/internal/dtos"
	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateResponse erstellt eine standardisierte WebResponse.
func CreateResponse[T any](message string, data T, requestID string, details ...any) dtos.WebResponse[T] {
	return dtos.WebResponse[T]{
		Message:   message,
		Data:      data,
		RequestID: requestID,
		Details:   details,
	}
}

// Respond übersetzt messageKey und schreibt die WebResponse mit status.
func Respond[T any](c *fiber.Ctx, i18n internal_i18n.Service, status int, messageKey string, params map[string]any, data T, details ...any) error {
	webResp := CreateResponse(i18n.T(GetLang(c), messageKey, params), data, GetRequestID(c), details...)
	if err := c.Status(status).JSON(webResp); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}

// NewValidator liefert einen Validator mit allen projektspezifischen Regeln.
func NewValidator(register ...func(*validator.Validate)) *validator.Validate {
	v := validator.New()
	for _, r := range register {
		r(v)
	}
	return v
}

// GetActor liest den von der SessionMiddleware gesetzten Aufrufer.
func GetActor(c *fiber.Ctx) (*entity.Actor, *app_errors.AppError) {
	actor, ok := c.Locals("actor").(*entity.Actor)
	if !ok || actor == nil || actor.ID == "" {
		return nil, app_errors.NewAuthenticationError("auth.unauthorized")
	}
	return actor, nil
}

func GetUserID(c *fiber.Ctx) (string, *app_errors.AppError) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", app_errors.NewAuthenticationError("auth.unauthorized")
	}

	return userID, nil
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, ok := c.Locals("request_id").(string)
	if !ok {
		reqID = "unknown"
	}
	return reqID
}

func GetLang(c *fiber.Ctx) string {
	lang, _ := c.Locals("lang").(string)
	return lang
}

// ParseBody liest den JSON-Body nach dst und validiert ihn.
func ParseBody(c *fiber.Ctx, v *validator.Validate, dst any) *app_errors.AppError {
	if len(c.Body()) == 0 {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}
	if err := c.BodyParser(dst); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	if err := v.Struct(dst); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

func ParseQuery(c *fiber.Ctx, v *validator.Validate, dst any) *app_errors.AppError {
	if err := c.QueryParser(dst); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}
	if err := v.Struct(dst); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

func ParseParams(c *fiber.Ctx, v *validator.Validate, dst any) *app_errors.AppError {
	if err := c.ParamsParser(dst); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}
	if err := v.Struct(dst); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return nil
}

func GetParamVorgangID(c *fiber.Ctx, v *validator.Validate) (string, *app_errors.AppError) {
	var param vorgang_dto.ParamVorgangID
	if err := ParseParams(c, v, &param); err != nil {
		return "", err
	}
	return param.ID, nil
}
