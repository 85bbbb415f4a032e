package routers

import (
	auth_handlers "github.com/Xenn-00/vorgang-meister/internal/handlers/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// AuthRouter richtet die Authentifizierungsrouten ein. Nur /anmelden ist ohne Session erreichbar.
func AuthRouter(api fiber.Router, c *Container, auth fiber.Handler) {
	r := api.Group("/auth")
	authHandler := auth_handlers.NewAuthHandler(c.Auth, c.Sessions, c.I18n)

	r.Post("/anmelden", loginLimiter(c.LoginLimiter), authHandler.LoginUser)
	r.Delete("/abmelden", auth, authHandler.LogoutUser)
	r.Get("/heartbeat", auth, authHandler.Heartbeat)
}

func loginLimiter(cfg LimiterConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
		Storage: cfg.Storage,
	})
}
