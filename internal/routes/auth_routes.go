package routes

import (
	"geotrack-backend/internal/handler"
	"geotrack-backend/internal/middleware"
	"geotrack-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewAuthHandler(userRepo)

	api := app.Group("/api/auth")

	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)
	api.Get("/profile", middleware.Auth, hdl.GetProfile)
}
