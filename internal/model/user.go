package model

import "time"

// User represents a registered account in the database.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" msg:"name is required"`
	Email    string `json:"email" validate:"required,email" msg:"please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"please enter a password with 6 or more characters"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"please include a valid email"`
	Password string `json:"password" validate:"required" msg:"password is required"`
}

// TokenResponse is returned by registration and login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// UserSummary is the owner snapshot embedded in a profile.
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MessageResponse carries a single human readable message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ToResponse strips sensitive fields from u.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Date:   u.CreatedAt,
	}
}
