package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxRetryDelay = 5 * time.Minute

func NewWorkerServer(redis *redis.Client) *asynq.Server {
	return asynq.NewServer(
		asynqRedisOpt(redis),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"email":   6, // Benachrichtigungen
				"default": 3,
				"low":     1, // Sweep und Reparatur
			},
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("task", task.Type()).
					Int("retried", retried).
					Int("max_retry", maxRetry).
					Msg("task failed")
			}),
		},
	)
}

// retryDelay verdoppelt die Wartezeit pro Versuch, gedeckelt auf maxRetryDelay.
func retryDelay(n int, err error, t *asynq.Task) time.Duration {
	if n > 8 {
		return maxRetryDelay
	}
	d := time.Duration(1<<n) * time.Second
	if d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func NewScheduler(redis *redis.Client) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynqRedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.Local,
			LogLevel: asynq.WarnLevel,
		},
	)
}

// asynqRedisOpt übernimmt die Verbindungsdaten des go-redis-Clients für Server und Scheduler.
func asynqRedisOpt(redis *redis.Client) asynq.RedisClientOpt {
	opt := redis.Options()
	return asynq.RedisClientOpt{
		Addr:     opt.Addr,
		Username: opt.Username,
		Password: opt.Password,
		DB:       opt.DB,
	}
}
