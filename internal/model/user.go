package model

import "time"

const (
	RoleWorker = "worker"
	RoleAdmin  = "admin"
)

// User identity is immutable after creation: the profile endpoints only
// read it, and nothing in the service layer mutates a stored user.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Email      string    `json:"email" gorm:"unique;not null"`
	Name       string    `json:"name"`
	Role       string    `json:"role" gorm:"size:16;default:worker"` // worker / admin
	EmployeeID string    `json:"employee_id"`
	Password   string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt  time.Time `json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
