package benachrichtigung_case

import (
	"context"
	"time"

	benachrichtigung_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/benachrichtigung-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/Xenn-00/vorgang-meister/internal/queue"
	benachrichtigung_repo "github.com/Xenn-00/vorgang-meister/internal/repo/benachrichtigung-repo"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const inboxLimit = 50

type BenachrichtigungService struct {
	repo    benachrichtigung_repo.BenachrichtigungRepoContract
	queue   queue.TaskQueueClient
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewBenachrichtigungService(db *pgxpool.Pool, q queue.TaskQueueClient, m *metrics.Metrics) BenachrichtigungServiceContract {
	return &BenachrichtigungService{
		repo:    benachrichtigung_repo.NewBenachrichtigungRepo(db),
		queue:   q,
		metrics: m,
		now:     time.Now,
	}
}

// Build erzeugt je Empfänger einen Eintrag. Doppelte und leere Empfänger werden übersprungen.
func Build(recipientIDs []string, v *entity.VorgangEntity, message string, now time.Time) []entity.BenachrichtigungEntity {
	if v == nil || len(recipientIDs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(recipientIDs))
	items := make([]entity.BenachrichtigungEntity, 0, len(recipientIDs))
	for _, recipient := range recipientIDs {
		if recipient == "" {
			continue
		}
		if _, dup := seen[recipient]; dup {
			continue
		}
		seen[recipient] = struct{}{}

		id, err := uuid.NewV7()
		if err != nil {
			log.Error().Err(err).Msg("Fehler beim Erzeugen der Benachrichtigungs-ID")
			continue
		}
		vorgangID := v.ID
		items = append(items, entity.BenachrichtigungEntity{
			ID:           id.String(),
			RecipientID:  recipient,
			VorgangID:    &vorgangID,
			VorgangLabel: v.SequentialLabel,
			Message:      message,
			CreatedAt:    now.UTC(),
		})
	}
	return items
}

// Notify liefert die Anzahl gespeicherter Einträge.
func (s *BenachrichtigungService) Notify(ctx context.Context, recipientIDs []string, v *entity.VorgangEntity, message string) int {
	items := Build(recipientIDs, v, message, s.now())
	if len(items) == 0 {
		return 0
	}

	if err := s.repo.InsertMany(ctx, items); err != nil {
		log.Error().Err(err.Err).Str("vorgang_id", v.ID).Int("recipients", len(items)).Msg("Benachrichtigungen konnten nicht gespeichert werden")
		s.metrics.Notification("failed")
		return 0
	}

	s.Dispatch(ctx, v, items)
	return len(items)
}

// Dispatch reiht die E-Mails zu bereits gespeicherten Einträgen ein.
func (s *BenachrichtigungService) Dispatch(ctx context.Context, v *entity.VorgangEntity, items []entity.BenachrichtigungEntity) {
	for i := range items {
		n := &items[i]
		s.metrics.Notification("stored")
		payload := &worker_task.VorgangNotificationEmail{
			NotificationID: n.ID,
			RecipientID:    n.RecipientID,
			VorgangID:      v.ID,
			VorgangLabel:   n.VorgangLabel,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		}
		if err := s.queue.EnqueueVorgangNotificationEmail(ctx, payload); err != nil {
			log.Warn().Err(err).Str("recipient_id", n.RecipientID).Msg("E-Mail zur Benachrichtigung nicht eingereiht")
			s.metrics.Notification("email_failed")
		}
	}
}

func (s *BenachrichtigungService) Inbox(ctx context.Context, userID string) (*benachrichtigung_dto.InboxResponse, *app_errors.AppError) {
	items, err := s.repo.ListUnread(ctx, userID, inboxLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.BenachrichtigungEntity{}
	}
	return &benachrichtigung_dto.InboxResponse{Items: items, Unread: count}, nil
}

func (s *BenachrichtigungService) CountUnread(ctx context.Context, userID string) (*benachrichtigung_dto.UnreadCountResponse, *app_errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &benachrichtigung_dto.UnreadCountResponse{Unread: count}, nil
}

func (s *BenachrichtigungService) MarkAllRead(ctx context.Context, userID string) (*benachrichtigung_dto.MarkReadResponse, *app_errors.AppError) {
	marked, err := s.repo.MarkAllRead(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return &benachrichtigung_dto.MarkReadResponse{Marked: marked}, nil
}
