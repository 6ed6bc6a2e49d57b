package config

import (
	"os"
	"strconv"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get environment variable as float with fallback
func GetEnvAsFloat(key string, fallback float64) float64 {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// Office is the geofence target every clock-in is measured against.
// Loaded once at boot; a record keeps the distance computed at submission
// time even if these values change later.
type Office struct {
	Name        string
	Latitude    float64
	Longitude   float64
	RadiusMeter float64
}

func LoadOffice() Office {
	return Office{
		Name:        GetEnv("OFFICE_NAME", "Head Office"),
		Latitude:    GetEnvAsFloat("OFFICE_LAT", 37.7750),
		Longitude:   GetEnvAsFloat("OFFICE_LNG", -122.4200),
		RadiusMeter: GetEnvAsFloat("OFFICE_RADIUS_M", 100),
	}
}
