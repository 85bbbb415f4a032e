package user_repo

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type UserRepoContract interface {
	FindByID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
	FindByUsername(ctx context.Context, username string) (*entity.UserEntity, *app_errors.AppError)
	FindManyByIDs(ctx context.Context, userIDs []string) ([]entity.UserEntity, *app_errors.AppError)
	ListByRole(ctx context.Context, role *entity.UserRole) ([]entity.UserEntity, *app_errors.AppError)
	ListIDsByRole(ctx context.Context, roles ...entity.UserRole) ([]string, *app_errors.AppError)
	InsertUser(ctx context.Context, u *entity.UserEntity) *app_errors.AppError
	UpdatePasswordHashTx(ctx context.Context, t tx.Tx, userID, hash string) *app_errors.AppError
}
