package worker_handler

import (
	"context"
	"fmt"

	worker_task "github.com/Xenn-00/vorgang-meister/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// SessionSweepHandler räumt Sessions ab, die niemand mehr berührt hat.
func (wh *WorkerHandler) SessionSweepHandler() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		removed, err := wh.sessions.Sweep(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("removed", removed).Msg("Worker: Session-Sweep abgeschlossen")
		return nil
	}
}

// SequenceRepairHandler schließt Lücken in der Nummerierung eines Jahres.
// Der Cron-Job schickt keinen Payload und meint damit das laufende Jahr.
func (wh *WorkerHandler) SequenceRepairHandler() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.SequenceRepair
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &p); err != nil {
				return fmt.Errorf("payload %s: %v: %w", t.Type(), err, asynq.SkipRetry)
			}
		}

		year := p.Year
		if year == 0 {
			year = wh.now().Year()
		}

		renamed, err := wh.sequence.Renumber(ctx, year)
		if err != nil {
			return err
		}
		log.Info().Int("year", year).Int("renamed", renamed).Msg("Worker: Nummerierung repariert")
		return nil
	}
}
