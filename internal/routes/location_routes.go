package routes

import (
	"geotrack-backend/config"
	"geotrack-backend/internal/geocode"
	"geotrack-backend/internal/handler"
	"geotrack-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupLocationRoutes(app *fiber.App, office config.Office, resolver *geocode.Resolver) {
	hdl := handler.NewLocationHandler(office, resolver)

	api := app.Group("/api/location", middleware.Auth)

	api.Post("/ping", hdl.Ping)
	api.Get("/status", hdl.Status)
	api.Delete("/session", hdl.EndSession)
}
