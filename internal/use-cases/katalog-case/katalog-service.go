package katalog_case

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/cache"
	katalog_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/katalog-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	katalog_repo "github.com/Xenn-00/vorgang-meister/internal/repo/katalog-repo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cantonTTL = time.Hour

type KatalogService struct {
	repo  katalog_repo.KatalogRepoContract
	cache cache.Cache
}

func NewKatalogService(db *pgxpool.Pool, redis *redis.Client) KatalogServiceContract {
	return &KatalogService{
		repo:  katalog_repo.NewKatalogRepo(db),
		cache: cache.NewRedisCache(redis),
	}
}

func cantonKey(parish string) string {
	return fmt.Sprintf("katalog:kanton:%s", strings.ToLower(strings.TrimSpace(parish)))
}

func (s *KatalogService) ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError) {
	return s.repo.ListPfarreien(ctx)
}

// LookupCanton liest zuerst aus Redis; ein Cache-Fehler fällt auf die Datenbank zurück.
func (s *KatalogService) LookupCanton(ctx context.Context, parish string) (string, *app_errors.AppError) {
	parish = strings.TrimSpace(parish)
	if parish == "" {
		return "", app_errors.NewFieldValidationError("parish", "required", "validation.required")
	}

	var cached string
	found, cacheErr := s.cache.Get(ctx, cantonKey(parish), &cached)
	if cacheErr != nil {
		log.Warn().Err(cacheErr.Err).Str("parish", parish).Msg("Kanton-Cache nicht lesbar")
	}
	if found && cached != "" {
		return cached, nil
	}

	canton, err := s.repo.FindCanton(ctx, parish)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, cantonKey(parish), canton, cantonTTL); err != nil {
		log.Warn().Err(err.Err).Str("parish", parish).Msg("Kanton konnte nicht gecacht werden")
	}
	return canton, nil
}

func (s *KatalogService) UpsertPfarrei(ctx context.Context, req katalog_dto.UpsertPfarreiRequest) (*entity.PfarreiEntity, *app_errors.AppError) {
	p := entity.PfarreiEntity{
		Name:   strings.TrimSpace(req.Name),
		Canton: strings.TrimSpace(req.Canton),
	}
	if err := s.repo.UpsertPfarrei(ctx, p); err != nil {
		return nil, err
	}

	if err := s.cache.Del(ctx, cantonKey(p.Name)); err != nil {
		log.Warn().Err(err).Str("parish", p.Name).Msg("Kanton-Cache nicht invalidiert")
	}
	return &p, nil
}

func (s *KatalogService) ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError) {
	return s.repo.ListTaetigkeiten(ctx)
}

func (s *KatalogService) CreateTaetigkeit(ctx context.Context, req katalog_dto.CreateTaetigkeitRequest) (*entity.TaetigkeitEntity, *app_errors.AppError) {
	return s.repo.InsertTaetigkeit(ctx, strings.TrimSpace(req.Name))
}

func (s *KatalogService) DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError {
	return s.repo.DeleteTaetigkeit(ctx, name)
}

// RequireTaetigkeiten meldet jede Tätigkeit, die nicht im Katalog steht, als Feldfehler.
func (s *KatalogService) RequireTaetigkeiten(ctx context.Context, names []string) *app_errors.AppError {
	missing, err := s.repo.MissingTaetigkeiten(ctx, names)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	details := []app_errors.FieldError{}
	for i, name := range names {
		if slices.Contains(missing, name) {
			details = append(details, app_errors.FieldError{
				Field:      fmt.Sprintf("task_types[%d]", i),
				Reason:     "not_found",
				MessageKey: "katalog.taetigkeit_not_found",
			})
		}
	}
	return app_errors.NewValidationError(details)
}
