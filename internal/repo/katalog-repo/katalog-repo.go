package katalog_repo

import (
	"context"
	"errors"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taetigkeitConstraint = "taetigkeiten_pkey"

type KatalogRepo struct {
	db *pgxpool.Pool
}

func NewKatalogRepo(db *pgxpool.Pool) KatalogRepoContract {
	return &KatalogRepo{
		db: db,
	}
}

func (r *KatalogRepo) ListPfarreien(ctx context.Context) ([]entity.PfarreiEntity, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT name, canton FROM pfarreien ORDER BY name`)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.PfarreiEntity])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return items, nil
}

// FindCanton vergleicht den Namen ohne Groß-/Kleinschreibung.
func (r *KatalogRepo) FindCanton(ctx context.Context, parish string) (string, *app_errors.AppError) {
	var canton string
	err := r.db.QueryRow(ctx, `SELECT canton FROM pfarreien WHERE lower(name) = lower($1) LIMIT 1`, parish).Scan(&canton)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", app_errors.NewNotFoundError("katalog.pfarrei_not_found")
		}
		return "", app_errors.MapPgxError(err)
	}
	return canton, nil
}

func (r *KatalogRepo) UpsertPfarrei(ctx context.Context, p entity.PfarreiEntity) *app_errors.AppError {
	query := `
		INSERT INTO pfarreien (name, canton) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET canton = EXCLUDED.canton
	`
	if _, err := r.db.Exec(ctx, query, p.Name, p.Canton); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *KatalogRepo) ListTaetigkeiten(ctx context.Context) ([]entity.TaetigkeitEntity, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT name, created_at FROM taetigkeiten ORDER BY name`)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByPos[entity.TaetigkeitEntity])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return items, nil
}

// MissingTaetigkeiten liefert die Namen aus names, die nicht im Katalog stehen.
func (r *KatalogRepo) MissingTaetigkeiten(ctx context.Context, names []string) ([]string, *app_errors.AppError) {
	if len(names) == 0 {
		return []string{}, nil
	}
	query := `
		SELECT n FROM unnest($1::text[]) AS n
		WHERE NOT EXISTS (SELECT 1 FROM taetigkeiten t WHERE t.name = n)
	`
	rows, err := r.db.Query(ctx, query, names)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	missing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return missing, nil
}

func (r *KatalogRepo) InsertTaetigkeit(ctx context.Context, name string) (*entity.TaetigkeitEntity, *app_errors.AppError) {
	var t entity.TaetigkeitEntity
	err := r.db.QueryRow(ctx, `INSERT INTO taetigkeiten (name) VALUES ($1) RETURNING name, created_at`, name).Scan(&t.Name, &t.CreatedAt)
	if err != nil {
		if app_errors.IsUniqueViolation(err, taetigkeitConstraint) {
			return nil, app_errors.NewConflictError("katalog.taetigkeit_exists", err)
		}
		return nil, app_errors.MapPgxError(err)
	}
	return &t, nil
}

func (r *KatalogRepo) DeleteTaetigkeit(ctx context.Context, name string) *app_errors.AppError {
	tag, err := r.db.Exec(ctx, `DELETE FROM taetigkeiten WHERE name = $1`, name)
	if err != nil {
		return app_errors.MapPgxError(err)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewNotFoundError("katalog.taetigkeit_not_found")
	}
	return nil
}
