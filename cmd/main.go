package main

// Package main ist der Einstiegspunkt der HTTP-API von "vorgang-meister".
// Lädt die Konfiguration, baut Postgres-, Redis-, Queue- und Anhang-Anbindung auf,
// verdrahtet die Router und fährt bei SIGINT/SIGTERM geordnet herunter.

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/attachment"
	"github.com/Xenn-00/vorgang-meister/internal/config"
	"github.com/Xenn-00/vorgang-meister/internal/db"
	"github.com/Xenn-00/vorgang-meister/internal/i18n"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/Xenn-00/vorgang-meister/internal/middleware"
	"github.com/Xenn-00/vorgang-meister/internal/queue"
	"github.com/Xenn-00/vorgang-meister/internal/routers"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	utils.SetupLogger("debug")

	// 1. Konfiguration laden
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden.")
	}
	utils.SetupLogger(cfg.APP.LogLevel)

	i18nSvc := i18n.NewInitI18nService()

	// 2. Postgres und Redis
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

	// 3. Paseto, Queue, Anhänge, Metriken
	paseto, err := utils.NewPasetoMaker(cfg.APP_SECRET.Paseto.HexKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Paseto-Schlüssel ungültig.")
	}
	taskQueue := queue.NewTaskQueue(redisPool)
	store, err := attachment.NewLocalStore(cfg.ATTACHMENTS.Dir, int64(cfg.ATTACHMENTS.MaxBytes))
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ATTACHMENTS.Dir).Msg("Anhang-Verzeichnis nicht nutzbar.")
	}
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// 4. Fiber-App
	fiberCfg := fiber.Config{
		AppName:      cfg.APP.Name,
		ErrorHandler: middleware.ErrorHandlerMiddleware(i18nSvc),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    cfg.ATTACHMENTS.MaxBytes + 1<<20, // Multipart-Overhead
		UnescapePath: true,
	}
	// Client-IP ist Teil der Session-Herkunft
	cfg.ApplyProxy(&fiberCfg)
	app := fiber.New(fiberCfg)
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.AcceptLanguageMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.MetricsMiddleware(appMetrics))

	container := routers.NewContainer(cfg, dbPool, redisPool, i18nSvc, paseto, taskQueue, store, appMetrics, prometheus.DefaultGatherer)
	routers.SetupRoutes(app, container)

	go func() {
		log.Info().Msgf("Starte %s auf Port %s", cfg.APP.Name, cfg.APP.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.APP.Port)); err != nil {
			log.Fatal().Err(err).Msg("Der Server konnte nicht gestartet werden.")
		}
	}()

	// 5. Graceful Shutdown: erst Fiber, dann die Pools. Der Queue-Client teilt sich die Redis-Verbindung.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	log.Warn().Msg("Shutdown-Signal empfangen... Vorbereitung zum Herunterfahren.")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Beim Herunterfahren ist ein Fehler aufgetreten.")
	}
	redisPool.Close()
	dbPool.Close()
	log.Info().Msg("Server ordnungsgemäß heruntergefahren.")
}
