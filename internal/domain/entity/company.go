package entity

import "time"

// Company alcance de los GC; se crea en el primer registro de GC sin código de invitación.
type Company struct {
	ID         string
	Name       string
	InviteCode string // token compartible para que otros GC se unan
	CreatedAt  time.Time
}
