package auth_case

import (
	"context"

	auth_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/auth-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.LoginUserResponse, *app_errors.AppError) {
	args := m.Called(ctx, req, loginMeta)
	return args.Get(0).(*auth_dto.LoginUserResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockAuthService) LogoutUser(ctx context.Context, userID, sessionID string) *app_errors.AppError {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockAuthService) RenewToken(ctx context.Context, actor *entity.Actor, sessionID string) (*auth_dto.RenewTokenResponse, *app_errors.AppError) {
	args := m.Called(ctx, actor, sessionID)
	return args.Get(0).(*auth_dto.RenewTokenResponse), args.Get(1).(*app_errors.AppError)
}
