package dto

import "time"

// AddTeamMemberRequest entrada para agregar un destinatario de asignación al proyecto.
type AddTeamMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Trade string `json:"trade" validate:"required"`
	Name  string `json:"name" validate:"omitempty,max=200"`
}

// TeamMemberResponse salida de un miembro del equipo.
type TeamMemberResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Email     string    `json:"email"`
	Trade     string    `json:"trade"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamListResponse equipo de un proyecto.
type TeamListResponse struct {
	Items []TeamMemberResponse `json:"items"`
}
