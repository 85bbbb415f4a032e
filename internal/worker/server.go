package worker

import (
	"context"
	"fmt"

	worker_handler "github.com/Xenn-00/vorgang-meister/internal/worker/handlers"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RunWorker startet Worker und Scheduler und blockiert bis ctx endet.
func RunWorker(ctx context.Context, redis *redis.Client, handler *worker_handler.WorkerHandler, cron CronConfig) error {
	srv := NewWorkerServer(redis)
	scheduler := NewScheduler(redis)

	mux := asynq.NewServeMux()
	RegisterWorkerHandlers(mux, handler)

	if err := RegisterCronJobs(scheduler, cron); err != nil {
		return fmt.Errorf("failed to register scheduler: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("scheduler start: %w", err)
	}
	if err := srv.Start(mux); err != nil {
		scheduler.Shutdown()
		return fmt.Errorf("worker start: %w", err)
	}

	<-ctx.Done()
	log.Info().Msg("shutting down worker server...")

	scheduler.Shutdown()
	srv.Shutdown()

	return nil
}
