package katalog_case

import (
	"context"

	katalog_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/katalog-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type KatalogServiceContract interface {
	ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError)
	LookupCanton(ctx context.Context, parish string) (string, *app_errors.AppError)
	UpsertPfarrei(ctx context.Context, req katalog_dto.UpsertPfarreiRequest) (*entity.PfarreiEntity, *app_errors.AppError)
	ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError)
	CreateTaetigkeit(ctx context.Context, req katalog_dto.CreateTaetigkeitRequest) (*entity.TaetigkeitEntity, *app_errors.AppError)
	DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError
	RequireTaetigkeiten(ctx context.Context, names []string) *app_errors.AppError
}
