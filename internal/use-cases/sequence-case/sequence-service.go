package sequence_case

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/tx"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	sequence_repo "github.com/Xenn-00/vorgang-meister/internal/repo/sequence-repo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type SequenceService struct {
	repo        sequence_repo.SequenceRepoContract
	txManager   tx.TxManager
	metrics     *metrics.Metrics
	maxAttempts int
	backoff     time.Duration
}

func NewSequenceService(db *pgxpool.Pool, m *metrics.Metrics, maxAttempts int, backoff time.Duration) SequenceServiceContract {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SequenceService{
		repo:        sequence_repo.NewSequenceRepo(db),
		txManager:   tx.NewPgxTxManager(db),
		metrics:     m,
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Allocate liefert das nächste freie Label des Jahres aus dem aktuellen Maximum.
// Die Sperre hält bis zum Ende von t; Wiederholungen übernimmt der Aufrufer mit frischer Transaktion.
func (s *SequenceService) Allocate(ctx context.Context, t tx.Tx, year int) (string, *app_errors.AppError) {
	if err := s.repo.LockSequence(ctx, t, year); err != nil {
		return "", err
	}
	max, err := s.repo.MaxCounter(ctx, t, year)
	if err != nil {
		return "", err
	}
	return FormatLabel(year, max+1), nil
}

// Renumber schließt Lücken in den Labels eines Jahres und liefert die Zahl der umbenannten Vorgänge.
// Ein zweiter Aufruf auf einem lückenlosen Jahr schreibt nichts.
func (s *SequenceService) Renumber(ctx context.Context, year int) (int, *app_errors.AppError) {
	var written int
	err := s.withRetry(ctx, "renumber", year, func() *app_errors.AppError {
		n, err := s.renumberOnce(ctx, year)
		if err != nil {
			return err
		}
		written = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	if written > 0 {
		log.Info().Int("year", year).Int("renamed", written).Msg("Labels neu nummeriert")
	}
	s.metrics.RenumberWrites(written)
	return written, nil
}

func (s *SequenceService) renumberOnce(ctx context.Context, year int) (int, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer t.Rollback(ctx)

	if err := s.repo.LockSequence(ctx, t, year); err != nil {
		return 0, err
	}

	records, err := s.repo.LockYear(ctx, t, year)
	if err != nil {
		return 0, err
	}

	plan := PlanRenumber(year, records)
	if len(plan) == 0 {
		return 0, nil
	}

	if err := s.repo.ApplyRenames(ctx, t, plan); err != nil {
		return 0, err
	}

	if err := t.Commit(ctx); err != nil {
		return 0, err
	}
	return len(plan), nil
}

func (s *SequenceService) withRetry(ctx context.Context, op string, year int, fn func() *app_errors.AppError) *app_errors.AppError {
	var err *app_errors.AppError
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !err.Retryable() && err.Type != app_errors.ErrConflict {
			return err
		}
		if attempt == s.maxAttempts {
			break
		}

		log.Warn().Err(err).Str("op", op).Int("year", year).Int("attempt", attempt).Msg("Sequenzoperation fehlgeschlagen, neuer Versuch")

		if s.backoff > 0 {
			select {
			case <-ctx.Done():
				return app_errors.NewStorageError(ctx.Err())
			case <-time.After(time.Duration(attempt) * s.backoff):
			}
		}
	}
	return err
}
