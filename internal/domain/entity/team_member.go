package entity

import "time"

// TeamMember directorio de destinatarios de asignación dentro de un proyecto.
// Es independiente de las cuentas (Profile): solo email + oficio.
type TeamMember struct {
	ID        string
	ProjectID string
	Email     string
	Trade     string
	Name      string
	CreatedAt time.Time
}
