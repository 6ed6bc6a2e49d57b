package routes

import (
	"geotrack-backend/config"
	"geotrack-backend/internal/geocode"
	"geotrack-backend/internal/handler"
	"geotrack-backend/internal/mailer"
	"geotrack-backend/internal/middleware"
	"geotrack-backend/internal/model"
	"geotrack-backend/internal/repository"
	"geotrack-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB, office config.Office, resolver *geocode.Resolver) {
	attendanceRepo := repository.NewAttendanceRepository(db)
	userRepo := repository.NewUserRepository(db)

	var notifier service.Notifier
	if m := mailer.NewFromEnv(userRepo); m != nil {
		notifier = m
	}

	svc := service.NewAttendanceService(attendanceRepo, office, notifier)
	hdl := handler.NewAttendanceHandler(svc, resolver)

	api := app.Group("/api/attendance", middleware.Auth)

	api.Post("/", hdl.Submit)
	api.Post("/photo", hdl.UploadPhoto)
	api.Get("/history", hdl.GetHistory)

	// Review surfaces, admin only.
	api.Get("/pending", middleware.Role(model.RoleAdmin), hdl.GetPending)
	api.Patch("/:id/status", middleware.Role(model.RoleAdmin), hdl.UpdateStatus)
	api.Get("/export", middleware.Role(model.RoleAdmin), hdl.ExportCSV)
}
