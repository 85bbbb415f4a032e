package workflow_case

import (
	"context"
	"testing"
	"time"

	vorgang_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/vorgang-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var empfaenger = &entity.Actor{ID: "u-emp", Username: "ana", Role: entity.EMPFAENGER}

func registerRequest() vorgang_dto.RegisterVorgangRequest {
	return vorgang_dto.RegisterVorgangRequest{
		ReferenceNumber: "OF-2024/118",
		Parish:          "San Roque",
		Detail:          "Revision",
		SentAt:          time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
}

// Test 1: Kanton wird nachgeschlagen, Disponenten werden benachrichtigt
func TestRegister_LooksUpCantonAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := setup()

	created := &entity.VorgangEntity{ID: "v-1", SequentialLabel: "2024-0007", Status: entity.VorgangPending, ReceivedAt: fixedNow}

	f.katalog.On("LookupCanton", ctx, "San Roque").Return("Quito", (*app_errors.AppError)(nil))
	f.vorgaenge.On("Register", ctx, mock.MatchedBy(func(in *vorgang_case.NewVorgang) bool {
		return in.Canton == "Quito" && in.RegisteredBy == "u-emp" && in.ReferenceNumber == "OF-2024/118"
	})).Return(created, (*app_errors.AppError)(nil))
	f.directory.On("ListIDsByRole", ctx, []entity.UserRole{entity.DISPONENT}).Return([]string{"u-d1", "u-d2"}, (*app_errors.AppError)(nil))
	f.notifier.On("Notify", ctx, []string{"u-d1", "u-d2"}, created, "Neuer Vorgang 2024-0007 wartet auf Disposition.").Return(2)

	resp, err := f.svc.Register(ctx, empfaenger, registerRequest())

	require.Nil(t, err)
	assert.Equal(t, "2024-0007", resp.SequentialLabel)
	assert.Equal(t, entity.VorgangPending, resp.Status)
	f.notifier.AssertExpectations(t)
}

// Test 2: Angegebener Kanton ersetzt den Katalog
func TestRegister_ExplicitCanton(t *testing.T) {
	ctx := context.Background()
	f := setup()
	req := registerRequest()
	canton := " Mejía "
	req.Canton = &canton

	created := &entity.VorgangEntity{ID: "v-1", SequentialLabel: "2024-0001"}
	f.vorgaenge.On("Register", ctx, mock.MatchedBy(func(in *vorgang_case.NewVorgang) bool {
		return in.Canton == "Mejía"
	})).Return(created, (*app_errors.AppError)(nil))
	f.directory.On("ListIDsByRole", ctx, mock.Anything).Return([]string{}, (*app_errors.AppError)(nil))
	f.notifier.On("Notify", ctx, []string{}, created, mock.Anything).Return(0)

	_, err := f.svc.Register(ctx, empfaenger, req)

	require.Nil(t, err)
	f.katalog.AssertNotCalled(t, "LookupCanton", mock.Anything, mock.Anything)
}

// Test 3: Unbekannte Pfarrei ohne Kanton
func TestRegister_UnknownParish(t *testing.T) {
	ctx := context.Background()
	f := setup()

	f.katalog.On("LookupCanton", ctx, "San Roque").Return("", app_errors.NewNotFoundError("katalog.pfarrei_not_found"))

	_, err := f.svc.Register(ctx, empfaenger, registerRequest())

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	assert.Equal(t, "canton", err.Details[0].Field)
	f.vorgaenge.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// Test 4: Techniker dürfen nicht registrieren
func TestRegister_Forbidden(t *testing.T) {
	f := setup()
	techniker := &entity.Actor{ID: "u-t", Role: entity.TECHNIKER}

	_, err := f.svc.Register(context.Background(), techniker, registerRequest())

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
	assert.Equal(t, 403, err.Code)
	f.vorgaenge.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// Test 5: Ohne Actor kein Zugriff
func TestRegister_Unauthenticated(t *testing.T) {
	f := setup()

	_, err := f.svc.Register(context.Background(), nil, registerRequest())

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrUnauthorized, err.Type)
}
