package worker_handler

import (
	"context"
	"fmt"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/mail"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// VorgangNotificationEmailHandler verschickt die E-Mail zu einem Posteingangs-Eintrag.
// Empfänger ohne Adresse oder inaktive Benutzer werden übersprungen, der Eintrag im Posteingang bleibt.
func (wh *WorkerHandler) VorgangNotificationEmailHandler() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.VorgangNotificationEmail
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("payload %s: %v: %w", t.Type(), err, asynq.SkipRetry)
		}

		user, err := wh.users.FindByID(ctx, p.RecipientID)
		if err != nil {
			if err.Type == app_errors.ErrNotFound {
				log.Warn().Str("recipient_id", p.RecipientID).Msg("Worker: Empfänger existiert nicht mehr")
				return nil
			}
			return err
		}

		if !user.IsActive || user.Email == nil || *user.Email == "" {
			log.Debug().Str("recipient_id", p.RecipientID).Msg("Worker: Empfänger ohne E-Mail, übersprungen")
			return nil
		}

		if err := wh.mailer.SendVorgangNotification(ctx, mail.VorgangNotification{
			To:            *user.Email,
			RecipientName: user.FullName,
			VorgangLabel:  p.VorgangLabel,
			Message:       p.Message,
			CreatedAt:     p.CreatedAt,
		}); err != nil {
			log.Error().Err(err).Str("notification_id", p.NotificationID).Msg("Worker: E-Mail fehlgeschlagen")
			return err
		}

		log.Info().Str("notification_id", p.NotificationID).Str("vorgang", p.VorgangLabel).Msg("Worker: Benachrichtigung verschickt")
		return nil
	}
}
