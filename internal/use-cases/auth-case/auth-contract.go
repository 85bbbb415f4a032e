package auth_case

import (
	"context"

	auth_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/auth-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// AuthServiceContract reicht die Methoden für den AuthService weiter.
type AuthServiceContract interface {
	LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.LoginUserResponse, *app_errors.AppError)
	LogoutUser(ctx context.Context, userID, sessionID string) *app_errors.AppError
	RenewToken(ctx context.Context, actor *entity.Actor, sessionID string) (*auth_dto.RenewTokenResponse, *app_errors.AppError)
}
