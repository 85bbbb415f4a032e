package user_case

import (
	"context"

	user_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/user-dto"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type UserServiceContract interface {
	UserSelfProfile(ctx context.Context, userID string) (*user_dto.UserProfileResponse, *app_errors.AppError)
	ListUsers(ctx context.Context, filter user_dto.UserListFilter) ([]user_dto.UserProfileResponse, *app_errors.AppError)
	CreateUser(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserProfileResponse, *app_errors.AppError)
	ChangePassword(ctx context.Context, userID string, req user_dto.ChangePasswordRequest) *app_errors.AppError
	RequireTechniker(ctx context.Context, workerIDs []string) *app_errors.AppError
}
