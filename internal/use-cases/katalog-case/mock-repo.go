package katalog_case

import (
	"context"

	katalog_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/katalog-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/stretchr/testify/mock"
)

type MockKatalogRepo struct {
	mock.Mock
}

func (m *MockKatalogRepo) ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.PfarreiEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogRepo) FindCanton(ctx context.Context, parish string) (string, *app_errors.AppError) {
	args := m.Called(ctx, parish)
	return args.String(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogRepo) UpsertPfarrei(ctx context.Context, p entity.PfarreiEntity) *app_errors.AppError {
	args := m.Called(ctx, p)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockKatalogRepo) ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.TaetigkeitEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogRepo) MissingTaetigkeiten(ctx context.Context, names []string) ([]string, *app_errors.AppError) {
	args := m.Called(ctx, names)
	return args.Get(0).([]string), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogRepo) InsertTaetigkeit(ctx context.Context, name string) (*entity.TaetigkeitEntity, *app_errors.AppError) {
	args := m.Called(ctx, name)
	return args.Get(0).(*entity.TaetigkeitEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogRepo) DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError {
	args := m.Called(ctx, name)
	return args.Get(0).(*app_errors.AppError)
}

type MockKatalogService struct {
	mock.Mock
}

func (m *MockKatalogService) ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.PfarreiEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogService) LookupCanton(ctx context.Context, parish string) (string, *app_errors.AppError) {
	args := m.Called(ctx, parish)
	return args.String(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogService) UpsertPfarrei(ctx context.Context, req katalog_dto.UpsertPfarreiRequest) (*entity.PfarreiEntity, *app_errors.AppError) {
	args := m.Called(ctx, req)
	return args.Get(0).(*entity.PfarreiEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogService) ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.TaetigkeitEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogService) CreateTaetigkeit(ctx context.Context, req katalog_dto.CreateTaetigkeitRequest) (*entity.TaetigkeitEntity, *app_errors.AppError) {
	args := m.Called(ctx, req)
	return args.Get(0).(*entity.TaetigkeitEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockKatalogService) DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError {
	args := m.Called(ctx, name)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockKatalogService) RequireTaetigkeiten(ctx context.Context, names []string) *app_errors.AppError {
	args := m.Called(ctx, names)
	return args.Get(0).(*app_errors.AppError)
}
