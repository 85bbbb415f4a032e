package session_case

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

// MockSessionService wird von Auth- und Middleware-Tests genutzt.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, principal *entity.Actor, origin string) (*entity.SessionEntity, *app_errors.AppError) {
	args := m.Called(ctx, principal, origin)
	return args.Get(0).(*entity.SessionEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockSessionService) Touch(ctx context.Context, principalID, token string) (*TouchResult, *app_errors.AppError) {
	args := m.Called(ctx, principalID, token)
	return args.Get(0).(*TouchResult), args.Get(1).(*app_errors.AppError)
}

func (m *MockSessionService) Logout(ctx context.Context, principalID, token string) *app_errors.AppError {
	args := m.Called(ctx, principalID, token)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockSessionService) Sweep(ctx context.Context) (int, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockSessionService) IdleTimeout() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
