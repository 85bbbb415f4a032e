package app_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPgxError_UniqueViolation(t *testing.T) {
	err := MapPgxError(&pgconn.PgError{Code: "23505", ConstraintName: "vorgaenge_sequential_label_key"})

	assert.Equal(t, 409, err.Code)
	assert.Equal(t, ErrConflict, err.Type)
	assert.False(t, err.Retryable())
}

func TestMapPgxError_ForeignKeyIsValidation(t *testing.T) {
	err := MapPgxError(&pgconn.PgError{Code: "23503"})

	assert.Equal(t, 400, err.Code)
	assert.Equal(t, ErrValidation, err.Type)
}

func TestMapPgxError_OtherIsStorage(t *testing.T) {
	err := MapPgxError(errors.New("connection reset by peer"))

	assert.Equal(t, 500, err.Code)
	assert.Equal(t, ErrStorage, err.Type)
	assert.True(t, err.Retryable())
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "vorgaenge_sequential_label_key"})

	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.True(t, IsUniqueViolation(wrapped, "vorgaenge_sequential_label_key"))
	assert.False(t, IsUniqueViolation(wrapped, "users_username_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestAppError_IsMatchesTypeAndKey(t *testing.T) {
	err := NewConflictError("assignment.must_conclude_before_delivering", nil)

	assert.True(t, errors.Is(err, NewConflictError("assignment.must_conclude_before_delivering", nil)))
	assert.False(t, errors.Is(err, NewConflictError("vorgang.already_completed", nil)))
}

func TestParseValidationError_SnakeCaseFields(t *testing.T) {
	type payload struct {
		ReferenceNumber string `validate:"required"`
		Detail          string `validate:"max=3"`
	}

	err := validator.New().Struct(payload{Detail: "abcd"})
	require.Error(t, err)

	details := ParseValidationError(err)
	require.Len(t, details, 2)
	assert.Equal(t, "reference_number", details[0].Field)
	assert.Equal(t, "validation.required", details[0].MessageKey)
	assert.Equal(t, "detail", details[1].Field)
	assert.Equal(t, "validation.max", details[1].MessageKey)
	assert.Equal(t, "3", details[1].Params["max"])
}
