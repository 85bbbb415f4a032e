package routers

import (
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	katalog_handlers "github.com/Xenn-00/vorgang-meister/internal/handlers/katalog"
	"github.com/Xenn-00/vorgang-meister/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func KatalogRouter(api fiber.Router, c *Container, auth fiber.Handler) {
	r := api.Group("/katalog", auth)
	h := katalog_handlers.NewKatalogHandler(c.Katalog, c.I18n)
	manage := middleware.RequireCapability(entity.CapManageCatalog)

	r.Get("/pfarreien", h.ListPfarreien)
	r.Get("/pfarreien/:name/kanton", h.LookupCanton)
	r.Post("/pfarreien", manage, h.UpsertPfarrei)
	r.Get("/taetigkeiten", h.ListTaetigkeiten)
	r.Post("/taetigkeiten", manage, h.CreateTaetigkeit)
	r.Delete("/taetigkeiten/:name", manage, h.DeleteTaetigkeit)
}
