package session_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type SessionRepoContract interface {
	Create(ctx context.Context, s *entity.SessionEntity, ttl time.Duration) (int, *app_errors.AppError)
	Find(ctx context.Context, token string) (*entity.SessionEntity, *app_errors.AppError)
	Refresh(ctx context.Context, principalID, token string, at time.Time, ttl time.Duration) (bool, *app_errors.AppError)
	Delete(ctx context.Context, principalID, token string) *app_errors.AppError
	Sweep(ctx context.Context, cutoff time.Time) (int, *app_errors.AppError)
}
