package app_errors

import "net/http"

// AppError repräsentiert einen Anwendungsfehler mit einem Code, einer Nachricht und optional einem Feld.
type AppError struct {
	Code       int          // HTTP status code
	Type       string       // VALIDATION_ERROR, NOT_FOUND, usw
	MessageKey string       // i18n key
	Details    []FieldError // optional (validation)
	Err        error        // original error (internal only)
}

const (
	ErrValidation   = "VALIDATION_ERROR"
	ErrInvalidBody  = "INVALID_BODY"
	ErrInvalidParam = "INVALID_PARAM"
	ErrInvalidQuery = "INVALID_QUERY"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN"
	ErrNotFound     = "NOT_FOUND"
	ErrConflict     = "CONFLICT"
	ErrRateLimited  = "TOO_MANY_REQUESTS"
	ErrStorage      = "STORAGE_ERROR"
	ErrInternal     = "INTERNAL_ERROR"
)

type FieldError struct {
	Field      string         `json:"field"`
	Reason     string         `json:"reason"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

func NewAppError(code int, errType string, messageKey string, err error) *AppError {
	return &AppError{
		Code:       code,
		Type:       errType,
		MessageKey: messageKey,
		Err:        err,
	}
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Code:       http.StatusBadRequest,
		Type:       ErrValidation,
		MessageKey: "invalid_request",
		Details:    details,
	}
}

// NewFieldValidationError baut einen Validierungsfehler für genau ein Feld.
func NewFieldValidationError(field, reason, messageKey string) *AppError {
	return NewValidationError([]FieldError{{
		Field:      field,
		Reason:     reason,
		MessageKey: messageKey,
	}})
}

func NewNotFoundError(messageKey string) *AppError {
	return NewAppError(http.StatusNotFound, ErrNotFound, messageKey, nil)
}

func NewConflictError(messageKey string, err error) *AppError {
	return NewAppError(http.StatusConflict, ErrConflict, messageKey, err)
}

func NewAuthenticationError(messageKey string) *AppError {
	return NewAppError(http.StatusUnauthorized, ErrUnauthorized, messageKey, nil)
}

func NewForbiddenError(messageKey string) *AppError {
	return NewAppError(http.StatusForbidden, ErrForbidden, messageKey, nil)
}

// NewStorageError kapselt einen Fehler der Persistenzschicht (Postgres, Redis, Dateisystem).
func NewStorageError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ErrStorage, "storage_error", err)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.MessageKey
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable meldet, ob ein erneuter Versuch sinnvoll ist. Nur Speicherfehler sind es.
func (e *AppError) Retryable() bool {
	return e != nil && e.Type == ErrStorage
}

// Is vergleicht Typ und MessageKey, damit errors.Is mit Sentinel-Werten funktioniert.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.MessageKey == t.MessageKey
}
