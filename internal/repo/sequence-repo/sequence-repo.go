package sequence_repo

import (
	"context"
	"fmt"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// temporaryLabelPrefix kann nie mit einem echten Label "<jahr>-NNNN" kollidieren.
const temporaryLabelPrefix = "~renumber~"

// sequenceLockNamespace ist der erste Schlüssel der Advisory Locks, der zweite ist das Jahr.
const sequenceLockNamespace int32 = 0x564d // "VM"

type SequenceRepo struct {
	db *pgxpool.Pool
}

func NewSequenceRepo(db *pgxpool.Pool) SequenceRepoContract {
	return &SequenceRepo{db: db}
}

func yearPattern(year int) string {
	return fmt.Sprintf("%04d-%%", year)
}

func (r *SequenceRepo) LockSequence(ctx context.Context, t tx.Tx, year int) *app_errors.AppError {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	if _, err := pgxTx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2);`, sequenceLockNamespace, int32(year)); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *SequenceRepo) MaxCounter(ctx context.Context, t tx.Tx, year int) (int, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return 0, appErr
	}

	query := `
	SELECT COALESCE(MAX(split_part(sequential_label, '-', 2)::int), 0)
	FROM vorgaenge
	WHERE sequential_label LIKE $1
		AND split_part(sequential_label, '-', 2) ~ '^[0-9]+$';
	`

	var max int
	if err := pgxTx.QueryRow(ctx, query, yearPattern(year)).Scan(&max); err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return max, nil
}

func (r *SequenceRepo) LockYear(ctx context.Context, t tx.Tx, year int) ([]entity.LabelledVorgang, *app_errors.AppError) {
	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return nil, appErr
	}

	query := `
	SELECT id, sequential_label, received_at
	FROM vorgaenge
	WHERE sequential_label LIKE $1
	ORDER BY received_at, sequential_label
	FOR UPDATE;
	`

	rows, err := pgxTx.Query(ctx, query, yearPattern(year))
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.LabelledVorgang, error) {
		var v entity.LabelledVorgang
		err := row.Scan(&v.ID, &v.SequentialLabel, &v.ReceivedAt)
		return v, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return records, nil
}

func (r *SequenceRepo) ApplyRenames(ctx context.Context, t tx.Tx, renames []entity.LabelRename) *app_errors.AppError {
	if len(renames) == 0 {
		return nil
	}

	pgxTx, appErr := tx.Unwrap(t)
	if appErr != nil {
		return appErr
	}

	// Phase 1 räumt alle Ziel-Labels frei, Phase 2 setzt die endgültigen Werte.
	batch := &pgx.Batch{}
	for _, rn := range renames {
		batch.Queue(`UPDATE vorgaenge SET sequential_label = $2 || id::text WHERE id = $1;`, rn.VorgangID, temporaryLabelPrefix)
	}
	for _, rn := range renames {
		batch.Queue(`UPDATE vorgaenge SET sequential_label = $2, updated_at = now() WHERE id = $1;`, rn.VorgangID, rn.To)
	}

	results := pgxTx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return app_errors.MapPgxError(err)
		}
	}
	if err := results.Close(); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}
