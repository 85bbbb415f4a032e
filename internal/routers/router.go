package routers

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/abstraction/attachment"
	"github.com/Xenn-00/vorgang-meister/internal/config"
	internal_i18n "github.com/Xenn-00/vorgang-meister/internal/i18n"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/Xenn-00/vorgang-meister/internal/middleware"
	"github.com/Xenn-00/vorgang-meister/internal/queue"
	user_repo "github.com/Xenn-00/vorgang-meister/internal/repo/user-repo"
	auth_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/auth-case"
	benachrichtigung_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/benachrichtigung-case"
	katalog_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/katalog-case"
	sequence_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/sequence-case"
	session_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/session-case"
	user_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/user-case"
	vorgang_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/vorgang-case"
	workflow_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/workflow-case"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	redis_fiber "github.com/gofiber/storage/redis/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// LimiterConfig begrenzt Anmeldeversuche pro IP. Ohne Storage zählt der Limiter im Speicher.
type LimiterConfig struct {
	Max     int
	Window  time.Duration
	Storage fiber.Storage
}

// HealthCheck meldet, ob eine Abhängigkeit bereit ist.
type HealthCheck func(ctx context.Context) error

// Container hält alles, was die Router brauchen. Tests füllen ihn mit Mocks.
type Container struct {
	I18n     internal_i18n.Service
	Tokens   middleware.TokenVerifier
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Sessions           session_case.SessionServiceContract
	Auth               auth_case.AuthServiceContract
	Users              user_case.UserServiceContract
	Katalog            katalog_case.KatalogServiceContract
	Benachrichtigungen benachrichtigung_case.BenachrichtigungServiceContract
	Workflow           workflow_case.WorkflowServiceContract

	LoginLimiter LimiterConfig
	Health       map[string]HealthCheck
}

// NewContainer verdrahtet die Services gegen Postgres, Redis und den Anhang-Store.
func NewContainer(cfg *config.AppConfig, db *pgxpool.Pool, rdb *redis.Client, i18n internal_i18n.Service,
	paseto *utils.PasetoMaker, q queue.TaskQueueClient, store attachment.Store, m *metrics.Metrics, g prometheus.Gatherer) *Container {

	userRepo := user_repo.NewUserRepo(db)
	sessions := session_case.NewSessionService(rdb, m, cfg.SESSION.IdleTimeout, cfg.SESSION.OuterBound)
	users := user_case.NewUserService(db, rdb)
	katalog := katalog_case.NewKatalogService(db, rdb)
	benachrichtigungen := benachrichtigung_case.NewBenachrichtigungService(db, q, m)
	sequence := sequence_case.NewSequenceService(db, m, cfg.SEQUENCE.MaxAttempts, cfg.SEQUENCE.RetryBackoff)

	workflow := workflow_case.NewWorkflowService(workflow_case.Deps{
		Vorgaenge:   vorgang_case.NewVorgangService(db, sequence),
		Users:       users,
		Katalog:     katalog,
		Directory:   userRepo,
		Notifier:    benachrichtigungen,
		Attachments: store,
		Queue:       q,
		Metrics:     m,
	})

	return &Container{
		I18n:               i18n,
		Tokens:             paseto,
		Metrics:            m,
		Gatherer:           g,
		Sessions:           sessions,
		Auth:               auth_case.NewAuthService(auth_case.NewBcryptVerifier(userRepo), sessions, paseto, cfg.SESSION.OuterBound),
		Users:              users,
		Katalog:            katalog,
		Benachrichtigungen: benachrichtigungen,
		Workflow:           workflow,
		LoginLimiter: LimiterConfig{
			Max:     cfg.LIMITER.LoginMax,
			Window:  cfg.LIMITER.LoginWindow,
			Storage: newLimiterStorage(rdb, cfg.LIMITER.RedisDB),
		},
		Health: map[string]HealthCheck{
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"postgres": db.Ping,
		},
	}
}

// newLimiterStorage legt die Zähler des Limiters in eine eigene Redis-Datenbank.
func newLimiterStorage(rdb *redis.Client, database int) fiber.Storage {
	opts := rdb.Options()
	host, portStr, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		host, portStr = opts.Addr, "6379"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}

	return redis_fiber.New(redis_fiber.Config{
		Host:     host,
		Port:     port,
		Username: opts.Username,
		Password: opts.Password,
		Database: database,
	})
}

// SetupRoutes richtet die API-Routen ein.
func SetupRoutes(app *fiber.App, c *Container) {
	api := app.Group("/api/v1")
	auth := middleware.SessionMiddleware(c.Tokens, c.Sessions)

	HealthRouter(api, c.Health)
	MetricsRouter(api, c.Gatherer)
	AuthRouter(api, c, auth)
	VorgangRouter(api, c, auth)
	BenachrichtigungRouter(api, c, auth)
	KatalogRouter(api, c, auth)
	UserRouter(api, c, auth)
}
