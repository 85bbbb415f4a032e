package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/config"
	"github.com/Xenn-00/vorgang-meister/internal/db"
	"github.com/Xenn-00/vorgang-meister/internal/mail"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	user_repo "github.com/Xenn-00/vorgang-meister/internal/repo/user-repo"
	sequence_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/sequence-case"
	session_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/session-case"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/Xenn-00/vorgang-meister/internal/worker"
	worker_handler "github.com/Xenn-00/vorgang-meister/internal/worker/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

func main() {
	utils.SetupLogger("debug")
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden.")
	}
	utils.SetupLogger(cfg.APP.LogLevel)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	dbPool, err := db.ConnectPool(connectCtx, cfg.DATABASE.Postgres.DSN)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres nicht erreichbar.")
	}
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, cfg.DATABASE.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis nicht erreichbar.")
	}

	// Der Worker hat keinen /metrics-Endpunkt; die Zähler laufen nur gegen eine eigene Registry.
	m := metrics.NewMetrics(prometheus.NewRegistry())

	handler := worker_handler.NewWorkerHandler(
		user_repo.NewUserRepo(dbPool),
		session_case.NewSessionService(redisPool, m, cfg.SESSION.IdleTimeout, cfg.SESSION.OuterBound),
		sequence_case.NewSequenceService(dbPool, m, cfg.SEQUENCE.MaxAttempts, cfg.SEQUENCE.RetryBackoff),
		mail.NewMailer(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting worker server...")
	err = worker.RunWorker(ctx, redisPool, handler, worker.CronConfig{
		SessionSweep:   cfg.SESSION.SweepCron,
		SequenceRepair: cfg.SEQUENCE.RepairCron,
	})

	redisPool.Close()
	dbPool.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("worker crashed")
	}
	log.Info().Msg("worker shutdown complete")
}
