package models

import (
	"time"

	"health-dashboard-be/internal/entities"
)

// UserSummary is the user as returned alongside a token
type UserSummary struct {
	ID    string `json:"id"` // UUID
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse represents the response after registration or login
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"` // JWT token
	User    UserSummary `json:"user"`
}

// UserProfile is the account without credentials
type UserProfile struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type MeResponse struct {
	Success bool        `json:"success"`
	User    UserProfile `json:"user"`
}

func NewUserProfile(u *entities.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
}
