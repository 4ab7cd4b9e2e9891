// Package users holds the identity model and the narrow store contract the
// auth core depends on.
package users

import "time"

// User is a registered identity. The email is unique across all identities
// and the password hash is an opaque salted digest owned by this record.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash []byte    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName sets the GORM table name.
func (User) TableName() string { return "users" }
