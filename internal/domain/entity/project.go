package entity

import "time"

// Project agrupa ítems y equipo; pertenece a la empresa del GC que lo crea.
type Project struct {
	ID        string
	CompanyID string
	Name      string
	CreatedBy string
	CreatedAt time.Time
}
