package model

import (
	"errors"
)

// AuthRequest types
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ErrInvalidCredentials is the cause behind every rejected login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Messages shown to API callers.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgUsernameTaken      = "A user with that username already exists."
	MsgLogoutSuccessful   = "Logout successful."
)
