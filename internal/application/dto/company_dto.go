package dto

import "time"

// CompanyResponse salida de la empresa del GC (incluye el código de invitación).
type CompanyResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// CompanyMemberResponse cuenta GC que pertenece a la empresa.
type CompanyMemberResponse struct {
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanySettingsResponse empresa + sus miembros, en orden de alta.
type CompanySettingsResponse struct {
	Company CompanyResponse         `json:"company"`
	Members []CompanyMemberResponse `json:"members"`
}
