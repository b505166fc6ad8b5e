package auth

import "github.com/tiendasport/storefront-api/internal/users"

// LoginRequest carries the credentials posted at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token and the public user.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        users.DTO `json:"user"`
}

// RegisterRequest carries the data posted at sign-up.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"required"`
}
