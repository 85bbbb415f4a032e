package sequence_case

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type SequenceServiceContract interface {
	// Allocate sperrt das Jahr in t und liefert das nächste Label. Der Aufrufer fügt in derselben
	// Transaktion ein, damit kein Renumber dazwischen committen kann.
	Allocate(ctx context.Context, t tx.Tx, year int) (string, *app_errors.AppError)
	Renumber(ctx context.Context, year int) (int, *app_errors.AppError)
}
