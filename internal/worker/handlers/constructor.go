package worker_handler

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/mail"
)

type RecipientLookup interface {
	FindByID(ctx context.Context, userID string) (*entity.UserEntity, *app_errors.AppError)
}

type SessionSweeper interface {
	Sweep(ctx context.Context) (int, *app_errors.AppError)
}

type SequenceRenumberer interface {
	Renumber(ctx context.Context, year int) (int, *app_errors.AppError)
}

type WorkerHandler struct {
	users    RecipientLookup
	sessions SessionSweeper
	sequence SequenceRenumberer
	mailer   mail.Mailer
	now      func() time.Time
}

func NewWorkerHandler(users RecipientLookup, sessions SessionSweeper, sequence SequenceRenumberer, mailer mail.Mailer) *WorkerHandler {
	return &WorkerHandler{
		users:    users,
		sessions: sessions,
		sequence: sequence,
		mailer:   mailer,
		now:      time.Now,
	}
}
