package benachrichtigung_case

import (
	"context"

	benachrichtigung_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/benachrichtigung-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
)

// Notifier legt Posteingangs-Einträge an und reiht die zugehörige E-Mail ein.
// Notify ist best effort: Fehler werden protokolliert, nie an den Aufrufer gegeben.
// Dispatch reiht nur die E-Mails für Einträge ein, die der Aufrufer selbst gespeichert hat.
type Notifier interface {
	Notify(ctx context.Context, recipientIDs []string, v *entity.VorgangEntity, message string) int
	Dispatch(ctx context.Context, v *entity.VorgangEntity, items []entity.BenachrichtigungEntity)
}

type BenachrichtigungServiceContract interface {
	Notifier
	Inbox(ctx context.Context, userID string) (*benachrichtigung_dto.InboxResponse, *app_errors.AppError)
	CountUnread(ctx context.Context, userID string) (*benachrichtigung_dto.UnreadCountResponse, *app_errors.AppError)
	MarkAllRead(ctx context.Context, userID string) (*benachrichtigung_dto.MarkReadResponse, *app_errors.AppError)
}
