package dto

import "time"

// SignUpRequest entrada para el registro. CompanyName e InviteCode solo aplican a GC:
// con InviteCode el GC se une a una empresa existente; sin él se crea una nueva.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,max=200"`
	Role        string `json:"role" validate:"required,oneof=gc sub"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	InviteCode  string `json:"invite_code" validate:"omitempty"`
}

// SignInRequest entrada para el inicio de sesión.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse salida de un perfil (sin password).
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionResponse token de sesión + perfil.
type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   ProfileResponse `json:"profile"`
}
