package user_case

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	user_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, username)
	return args.Get(0).(*entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) FindManyByIDs(ctx context.Context, userIDs []string) ([]entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) ListByRole(ctx context.Context, role *entity.UserRole) ([]entity.UserEntity, *app_errors.AppError) {
	args := m.Called(ctx, role)
	return args.Get(0).([]entity.UserEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) ListIDsByRole(ctx context.Context, roles ...entity.UserRole) ([]string, *app_errors.AppError) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]string), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserRepo) InsertUser(ctx context.Context, u *entity.UserEntity) *app_errors.AppError {
	args := m.Called(ctx, u)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockUserRepo) UpdatePasswordHashTx(ctx context.Context, t tx.Tx, userID, hash string) *app_errors.AppError {
	args := m.Called(ctx, t, userID, hash)
	return args.Get(0).(*app_errors.AppError)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*user_dto.UserProfileResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserService) ListUsers(ctx context.Context, filter user_dto.UserListFilter) ([]user_dto.UserProfileResponse, *app_errors.AppError) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]user_dto.UserProfileResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserService) CreateUser(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserProfileResponse, *app_errors.AppError) {
	args := m.Called(ctx, req)
	return args.Get(0).(*user_dto.UserProfileResponse), args.Get(1).(*app_errors.AppError)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req user_dto.ChangePasswordRequest) *app_errors.AppError {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockUserService) RequireTechniker(ctx context.Context, workerIDs []string) *app_errors.AppError {
	args := m.Called(ctx, workerIDs)
	return args.Get(0).(*app_errors.AppError)
}
