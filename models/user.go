// user.go - Defines the User model for the database

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAdmin is the only elevated role. An empty role means no privileges.
const RoleAdmin = "admin"

type User struct { // User struct represents a registered customer or staff member
	ID       string `gorm:"primaryKey" json:"_id"`                     // Opaque user ID
	Email    string `gorm:"uniqueIndex;not null" json:"email"`         // User's email (unique, cannot be null)
	Name     string `json:"name,omitempty"`                            // Display name
	PhotoURL string `json:"photoURL,omitempty"`                        // Avatar URL
	Role     string `gorm:"not null;default:''" json:"role,omitempty"` // "" or "admin"
}

// IsAdmin reports whether the record grants admin capability.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) BeforeCreate(*gorm.DB) error {
	u.ID = ensureID(u.ID)
	return nil
}

// ensureID keeps a caller-provided ID and generates one otherwise.
func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
