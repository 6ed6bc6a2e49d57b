package database

import (
	"log"

	"geotrack-backend/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll creates the first admin account and a demo worker. Safe to run
// repeatedly; existing emails are left alone.
func SeedAll(db *gorm.DB) {
	seedUser(db, model.User{
		Email:      "admin@geotrack.local",
		Name:       "Site Administrator",
		Role:       model.RoleAdmin,
		EmployeeID: "EMP001",
	}, "admin123")

	seedUser(db, model.User{
		Email:      "worker@geotrack.local",
		Name:       "Demo Worker",
		Role:       model.RoleWorker,
		EmployeeID: "EMP002",
	}, "worker123")
}

func seedUser(db *gorm.DB, user model.User, password string) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}
	user.ID = uuid.NewString()
	user.Password = string(hashedPassword)

	res := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user)
	if res.Error != nil {
		log.Printf("Seeding %s failed: %v", user.Email, res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Seeded %s account: %s", user.Role, user.Email)
	}
}
