package sequence_repo

import (
	"context"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type SequenceRepoContract interface {
	// LockSequence serialisiert Vergabe und Neunummerierung eines Jahres bis zum Ende der Transaktion.
	LockSequence(ctx context.Context, t tx.Tx, year int) *app_errors.AppError
	// MaxCounter liefert den höchsten Zähler unter den Labels des Jahres, 0 wenn es keine gibt.
	MaxCounter(ctx context.Context, t tx.Tx, year int) (int, *app_errors.AppError)
	// LockYear sperrt alle Vorgänge des Jahres für die laufende Transaktion und liefert sie.
	LockYear(ctx context.Context, t tx.Tx, year int) ([]entity.LabelledVorgang, *app_errors.AppError)
	// ApplyRenames schreibt die Umbenennungen in zwei Phasen über ein temporäres Präfix.
	ApplyRenames(ctx context.Context, t tx.Tx, renames []entity.LabelRename) *app_errors.AppError
}
