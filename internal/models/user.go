package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access role of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	// RoleAdmin cannot be self-registered; it is granted from the CLI.
	RoleAdmin Role = "admin"
)

// User represents an account of the marketplace.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Username     string    `json:"username" gorm:"type:varchar(30);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // No json tag for security
	Role         Role      `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary is the public subset of a user shown next to the things they own.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// Summary returns the public subset of the user.
func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role}
}
