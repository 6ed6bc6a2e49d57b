package main

import (
	"log"

	"geotrack-backend/config"
	"geotrack-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env manually since this runs as a separate script.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()

	log.Println("Running database seeder...")
	database.SeedAll(config.DB)
	log.Println("Seeding done.")
}
