package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectListResponse proyectos de la empresa, más recientes primero.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
}
