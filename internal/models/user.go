package models

import "time"

// RoleUser is the only role granted at registration
const RoleUser = "ROLE_USER"

// User is a registered account. The email doubles as the caller identity
// stamped onto recipes.
type User struct {
	Email        string    `gorm:"primaryKey;size:255" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:50;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
