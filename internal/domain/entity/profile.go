package entity

import "time"

// Role rol de una cuenta, fijo desde el registro.
type Role string

// Roles válidos para Profile.
const (
	RoleGC  Role = "gc"
	RoleSub Role = "sub"
)

// Valid informa si el rol es gc o sub.
func (r Role) Valid() bool {
	return r == RoleGC || r == RoleSub
}

// Profile cuenta de usuario (ID = identidad de auth).
type Profile struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         Role
	CompanyID    string // vacío para subs
	CompanyName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
