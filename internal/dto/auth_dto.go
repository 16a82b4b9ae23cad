package dto

import "anoa.com/campusplacement/internal/model"

type RegisterRequest struct {
	Email      string   `json:"email" binding:"required,email"`
	Password   string   `json:"password" binding:"required,min=8"`
	Name       string   `json:"name" binding:"required,max=100"`
	Role       string   `json:"role" binding:"required,oneof=student faculty"`
	Department string   `json:"department" binding:"required,max=100"`
	RollNumber *string  `json:"roll_number"`
	CGPA       *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Skills     []string `json:"skills"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        *model.User `json:"user"`
}

// UpdateProfileRequest is the generic profile-update payload. It has no
// password or email field on purpose: those cannot be mutated through this
// path.
type UpdateProfileRequest struct {
	Name       *string  `json:"name" binding:"omitempty,max=100"`
	Department *string  `json:"department" binding:"omitempty,max=100"`
	RollNumber *string  `json:"roll_number"`
	CGPA       *float64 `json:"cgpa" binding:"omitempty,min=0,max=10"`
	Skills     []string `json:"skills"`
}
