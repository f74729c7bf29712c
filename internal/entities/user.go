package entities

import "time"

// User represents a registered account
type User struct {
	ID           string     `json:"id" bson:"_id"` // UUID
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	Phone        *string    `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string     `json:"-" bson:"password_hash"` // Don't expose password hash in JSON
	LastLoginAt  *time.Time `json:"lastLogin,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`
}
