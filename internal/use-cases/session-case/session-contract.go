package session_case

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type TouchResult struct {
	Session   *entity.SessionEntity
	Remaining time.Duration
}

type SessionServiceContract interface {
	Login(ctx context.Context, principal *entity.Actor, origin string) (*entity.SessionEntity, *app_errors.AppError)
	Touch(ctx context.Context, principalID, token string) (*TouchResult, *app_errors.AppError)
	Logout(ctx context.Context, principalID, token string) *app_errors.AppError
	Sweep(ctx context.Context) (int, *app_errors.AppError)
	IdleTimeout() time.Duration
}
