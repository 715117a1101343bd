package auth

import "time"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddChildRequest struct {
	Name      string    `json:"name" binding:"required"`
	BirthDate time.Time `json:"birth_date"`
	Gender    string    `json:"gender"`
}
