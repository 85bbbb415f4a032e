package benachrichtigung_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BenachrichtigungRepo struct {
	db *pgxpool.Pool
}

func NewBenachrichtigungRepo(db *pgxpool.Pool) BenachrichtigungRepoContract {
	return &BenachrichtigungRepo{
		db: db,
	}
}

// InsertMany schreibt alle Einträge in einem Batch.
func (r *BenachrichtigungRepo) InsertMany(ctx context.Context, items []entity.BenachrichtigungEntity) *app_errors.AppError {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range items {
		batch.Queue(`
			INSERT INTO benachrichtigungen (id, recipient_id, vorgang_id, vorgang_label, message, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, n.ID, n.RecipientID, n.VorgangID, n.VorgangLabel, n.Message, n.CreatedAt)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *BenachrichtigungRepo) ListUnread(ctx context.Context, recipientID string, limit int) ([]entity.BenachrichtigungEntity, *app_errors.AppError) {
	query := `
		SELECT id, recipient_id, vorgang_id, vorgang_label, message, created_at, read_at
		FROM benachrichtigungen
		WHERE recipient_id = $1 AND read_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BenachrichtigungEntity, error) {
		var n entity.BenachrichtigungEntity
		err := row.Scan(&n.ID, &n.RecipientID, &n.VorgangID, &n.VorgangLabel, &n.Message, &n.CreatedAt, &n.ReadAt)
		return n, err
	})
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return items, nil
}

func (r *BenachrichtigungRepo) CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM benachrichtigungen WHERE recipient_id = $1 AND read_at IS NULL`, recipientID).Scan(&count); err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return count, nil
}

func (r *BenachrichtigungRepo) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError) {
	tag, err := r.db.Exec(ctx, `UPDATE benachrichtigungen SET read_at = $2 WHERE recipient_id = $1 AND read_at IS NULL`, recipientID, at)
	if err != nil {
		return 0, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected(), nil
}
