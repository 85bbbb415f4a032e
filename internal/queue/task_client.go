package queue

import (
	"context"
	"errors"
	"time"

	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const repairUniqueTTL = 10 * time.Minute

type TaskQueueClient interface {
	EnqueueVorgangNotificationEmail(ctx context.Context, payload *worker_task.VorgangNotificationEmail) error
	EnqueueSequenceRepair(ctx context.Context, payload *worker_task.SequenceRepair) error
}

type TaskQueue struct {
	client *asynq.Client
}

func NewTaskQueue(redis *redis.Client) *TaskQueue {
	return &TaskQueue{
		client: asynq.NewClientFromRedisClient(redis),
	}
}

func (q *TaskQueue) EnqueueVorgangNotificationEmail(ctx context.Context, payload *worker_task.VorgangNotificationEmail) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(worker_task.TaskVorgangNotificationEmail, p, asynq.Queue("email"), asynq.MaxRetry(5))

	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}
	log.Debug().Str("task_id", info.ID).Str("recipient_id", payload.RecipientID).Msg("Benachrichtigungs-E-Mail eingereiht")
	return nil
}

// EnqueueSequenceRepair reiht eine Reparatur-Neunummerierung ein, z. B. nach einem fehlgeschlagenen Renumber beim Löschen.
func (q *TaskQueue) EnqueueSequenceRepair(ctx context.Context, payload *worker_task.SequenceRepair) error {
	p, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	// Pro Jahr genügt eine ausstehende Reparatur.
	task := asynq.NewTask(worker_task.TaskSequenceRepair, p, asynq.Queue("low"), asynq.MaxRetry(3), asynq.Unique(repairUniqueTTL))

	_, err = q.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}
