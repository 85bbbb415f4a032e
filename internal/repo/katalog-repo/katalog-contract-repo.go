package katalog_repo

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type KatalogRepoContract interface {
	ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError)
	FindCanton(ctx context.Context, parish string) (string, *app_errors.AppError)
	UpsertPfarrei(ctx context.Context, p entity.PfarreiEntity) *app_errors.AppError
	ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError)
	MissingTaetigkeiten(ctx context.Context, names []string) ([]string, *app_errors.AppError)
	InsertTaetigkeit(ctx context.Context, name string) (*entity.TaetigkeitEntity, *app_errors.AppError)
	DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError
}
