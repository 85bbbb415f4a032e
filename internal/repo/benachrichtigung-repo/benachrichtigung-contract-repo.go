package benachrichtigung_repo

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

type BenachrichtigungRepoContract interface {
	InsertMany(ctx context.Context, items []entity.BenachrichtigungEntity) *app_errors.AppError
	ListUnread(ctx context.Context, recipientID string, limit int) ([]entity.BenachrichtigungEntity, *app_errors.AppError)
	CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError)
	MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError)
}
