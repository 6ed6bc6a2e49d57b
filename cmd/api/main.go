package main

import (
	"log"

	"geotrack-backend/config"
	"geotrack-backend/internal/geocode"
	"geotrack-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	office := config.LoadOffice()
	log.Printf("Geofence target: %s (%.4f, %.4f) radius %.0fm",
		office.Name, office.Latitude, office.Longitude, office.RadiusMeter)

	app := fiber.New()

	// Global middleware
	app.Use(cors.New())
	app.Use(logger.New())

	// Proof photos are served back to the review UI from here.
	app.Static("/uploads", "./uploads")

	resolver := geocode.NewResolver()

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB, office, resolver)
	routes.SetupLocationRoutes(app, office, resolver)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Printf("Server listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
