package routers

import (
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	user_handlers "github.com/Xenn-00/vorgang-meister/internal/handlers/user"
	"github.com/Xenn-00/vorgang-meister/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRouter(api fiber.Router, c *Container, auth fiber.Handler) {
	r := api.Group("/benutzer", auth)
	userHandler := user_handlers.NewUserHandler(c.Users, c.I18n)

	r.Get("/me", userHandler.FetchUserSelfProfile)
	r.Patch("/me/passwort", userHandler.ChangePassword)
	r.Get("/", middleware.RequireCapability(entity.CapListUsers), userHandler.ListUsers)
	r.Post("/", middleware.RequireCapability(entity.CapManageUsers), userHandler.CreateUser)
}
