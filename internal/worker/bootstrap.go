package worker

import (
	"fmt"

	worker_handler "github.com/Xenn-00/vorgang-meister/internal/worker/handlers"
	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// CronConfig enthält die Zeitpläne der Wartungsjobs (Cron-Syntax).
type CronConfig struct {
	SessionSweep   string
	SequenceRepair string
}

func RegisterWorkerHandlers(mux *asynq.ServeMux, h *worker_handler.WorkerHandler) {
	mux.HandleFunc(worker_task.TaskVorgangNotificationEmail, h.VorgangNotificationEmailHandler())
	mux.HandleFunc(worker_task.TaskSessionSweep, h.SessionSweepHandler())
	mux.HandleFunc(worker_task.TaskSequenceRepair, h.SequenceRepairHandler())
}

// Registrar ist der Teil des asynq.Scheduler, den RegisterCronJobs braucht.
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

func RegisterCronJobs(s Registrar, cfg CronConfig) error {
	jobs := []struct {
		spec  string
		task  *asynq.Task
		queue string
		desc  string
	}{
		{
			spec:  cfg.SessionSweep,
			task:  asynq.NewTask(worker_task.TaskSessionSweep, nil),
			queue: "low",
			desc:  "sweep abandoned sessions",
		},
		{
			spec:  cfg.SequenceRepair,
			task:  asynq.NewTask(worker_task.TaskSequenceRepair, nil),
			queue: "low",
			desc:  "repair sequential labels of the current year",
		},
	}

	for _, job := range jobs {
		if job.spec == "" {
			log.Warn().Msgf("not scheduled (no cron spec): %s", job.desc)
			continue
		}
		if _, err := s.Register(job.spec, job.task, asynq.Queue(job.queue)); err != nil {
			return fmt.Errorf("register %s failed: %w", job.desc, err)
		}
		log.Info().Msgf("scheduled: %s (%s)", job.desc, job.spec)
	}

	return nil
}
