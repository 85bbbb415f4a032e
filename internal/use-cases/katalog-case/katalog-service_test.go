package katalog_case

import (
	"context"
	"errors"
	"testing"

	katalog_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/katalog-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	use_cases "github.com/Xenn-00/vorgang-meister/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: Zweiter Lookup kommt aus dem Cache
func TestLookupCanton_CachesResult(t *testing.T) {
	ctx := context.Background()
	repo := new(MockKatalogRepo)
	c := &use_cases.MockCache{}
	svc := &KatalogService{repo: repo, cache: c}

	repo.On("FindCanton", ctx, "San Roque").Return("Quito", (*app_errors.AppError)(nil)).Once()

	first, err := svc.LookupCanton(ctx, "San Roque")
	require.Nil(t, err)
	second, err := svc.LookupCanton(ctx, " san roque ")
	require.Nil(t, err)

	assert.Equal(t, "Quito", first)
	assert.Equal(t, "Quito", second)
	assert.Equal(t, 1, c.SetCalled)
	repo.AssertNumberOfCalls(t, "FindCanton", 1)
}

// Test 2: Cache-Fehler fällt auf die Datenbank zurück
func TestLookupCanton_CacheErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := new(MockKatalogRepo)
	c := &use_cases.MockCache{
		GetFn: func(ctx context.Context, key string, dest any) (bool, *app_errors.AppError) {
			return false, app_errors.NewStorageError(errors.New("redis down"))
		},
	}
	svc := &KatalogService{repo: repo, cache: c}

	repo.On("FindCanton", ctx, "Cumbayá").Return("Quito", (*app_errors.AppError)(nil))

	canton, err := svc.LookupCanton(ctx, "Cumbayá")

	assert.Nil(t, err)
	assert.Equal(t, "Quito", canton)
}

// Test 3: Unbekannte Pfarrei
func TestLookupCanton_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockKatalogRepo)
	svc := &KatalogService{repo: repo, cache: &use_cases.MockCache{}}

	repo.On("FindCanton", ctx, "Nirgendwo").Return("", app_errors.NewNotFoundError("katalog.pfarrei_not_found"))

	_, err := svc.LookupCanton(ctx, "Nirgendwo")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrNotFound, err.Type)
}

// Test 4: Upsert invalidiert den gecachten Kanton
func TestUpsertPfarrei_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockKatalogRepo)
	c := &use_cases.MockCache{}
	svc := &KatalogService{repo: repo, cache: c}

	repo.On("FindCanton", ctx, "Tumbaco").Return("Quito", (*app_errors.AppError)(nil)).Once()
	repo.On("UpsertPfarrei", ctx, entity.PfarreiEntity{Name: "Tumbaco", Canton: "Rumiñahui"}).Return((*app_errors.AppError)(nil))
	repo.On("FindCanton", ctx, "Tumbaco").Return("Rumiñahui", (*app_errors.AppError)(nil)).Once()

	before, _ := svc.LookupCanton(ctx, "Tumbaco")
	_, err := svc.UpsertPfarrei(ctx, katalog_dto.UpsertPfarreiRequest{Name: " Tumbaco", Canton: "Rumiñahui "})
	require.Nil(t, err)
	after, _ := svc.LookupCanton(ctx, "Tumbaco")

	assert.Equal(t, "Quito", before)
	assert.Equal(t, "Rumiñahui", after)
	assert.Equal(t, 1, c.DelCalled)
}

// Test 5: Unbekannte Tätigkeiten werden mit Index gemeldet
func TestRequireTaetigkeiten(t *testing.T) {
	ctx := context.Background()
	repo := new(MockKatalogRepo)
	svc := &KatalogService{repo: repo, cache: &use_cases.MockCache{}}

	names := []string{"Inspección", "Malabares", "Consultoría"}
	repo.On("MissingTaetigkeiten", ctx, names).Return([]string{"Malabares"}, (*app_errors.AppError)(nil))

	err := svc.RequireTaetigkeiten(ctx, names)

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
	require.Len(t, err.Details, 1)
	assert.Equal(t, "task_types[1]", err.Details[0].Field)
}
