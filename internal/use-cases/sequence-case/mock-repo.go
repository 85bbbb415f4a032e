package sequence_case

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockSequenceRepo struct {
	mock.Mock
}

func (m *MockSequenceRepo) LockSequence(ctx context.Context, t tx.Tx, year int) *app_errors.AppError {
	args := m.Called(ctx, t, year)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockSequenceRepo) MaxCounter(ctx context.Context, t tx.Tx, year int) (int, *app_errors.AppError) {
	args := m.Called(ctx, t, year)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockSequenceRepo) LockYear(ctx context.Context, t tx.Tx, year int) ([]entity.LabelledVorgang, *app_errors.AppError) {
	args := m.Called(ctx, t, year)
	return args.Get(0).([]entity.LabelledVorgang), args.Get(1).(*app_errors.AppError)
}

func (m *MockSequenceRepo) ApplyRenames(ctx context.Context, t tx.Tx, renames []entity.LabelRename) *app_errors.AppError {
	args := m.Called(ctx, t, renames)
	return args.Get(0).(*app_errors.AppError)
}

// MockSequenceService wird von den Vorgang-Tests genutzt.
type MockSequenceService struct {
	mock.Mock
}

func (m *MockSequenceService) Allocate(ctx context.Context, t tx.Tx, year int) (string, *app_errors.AppError) {
	args := m.Called(ctx, t, year)
	return args.String(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockSequenceService) Renumber(ctx context.Context, year int) (int, *app_errors.AppError) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}
