package tx

import (
	"context"
	"errors"
	"fmt"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	db *pgxpool.Pool
}

func NewPgxTxManager(db *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{db: db}
}

// Begin startet eine READ COMMITTED Transaktion. Zeilensperren (FOR UPDATE) serialisieren
// konkurrierende Schreiber auf demselben Vorgang.
func (m *PgxTxManager) Begin(ctx context.Context) (Tx, *app_errors.AppError) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, app_errors.NewStorageError(err)
	}

	return &PgxTx{Tx: tx}, nil
}

type PgxTx struct {
	Tx pgx.Tx
}

func (t *PgxTx) Commit(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Commit(ctx); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

// Rollback ist nach einem Commit ein No-op und darf daher immer per defer aufgerufen werden.
func (t *PgxTx) Rollback(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return app_errors.NewStorageError(err)
	}
	return nil
}

// Unwrap liefert die pgx-Transaktion hinter t. Repos nutzen es statt einer ungeprüften Typumwandlung.
func Unwrap(t Tx) (pgx.Tx, *app_errors.AppError) {
	p, ok := t.(*PgxTx)
	if !ok || p.Tx == nil {
		return nil, app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", fmt.Errorf("unexpected transaction type %T", t))
	}
	return p.Tx, nil
}
