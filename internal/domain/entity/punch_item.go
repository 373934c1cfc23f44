package entity

import "time"

// ItemStatus estado de un ítem de la punch list (deben coincidir con el CHECK de punch_items.status).
type ItemStatus string

const (
	StatusOpen           ItemStatus = "open"
	StatusInProgress     ItemStatus = "in-progress"
	StatusReadyForReview ItemStatus = "ready-for-review"
	StatusCompleted      ItemStatus = "completed"
)

// Valid informa si el estado pertenece al conjunto fijo.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusReadyForReview, StatusCompleted:
		return true
	}
	return false
}

// Statuses devuelve los cuatro estados en orden de flujo.
func Statuses() []ItemStatus {
	return []ItemStatus{StatusOpen, StatusInProgress, StatusReadyForReview, StatusCompleted}
}

// Oficios (trades) válidos para ítems y miembros de equipo.
const (
	TradeGeneral    = "General"
	TradeElectrical = "Electrical"
	TradePlumbing   = "Plumbing"
	TradeHVAC       = "HVAC"
	TradeFraming    = "Framing"
	TradeDrywall    = "Drywall"
	TradePainting   = "Painting"
	TradeFlooring   = "Flooring"
	TradeTile       = "Tile"
	TradeCabinets   = "Cabinets"
)

// Trades devuelve el conjunto fijo de oficios en el orden en que se muestran.
func Trades() []string {
	return []string{
		TradeGeneral, TradeElectrical, TradePlumbing, TradeHVAC, TradeFraming,
		TradeDrywall, TradePainting, TradeFlooring, TradeTile, TradeCabinets,
	}
}

// ValidTrade informa si el oficio pertenece al conjunto fijo (comparación exacta).
func ValidTrade(trade string) bool {
	for _, t := range Trades() {
		if t == trade {
			return true
		}
	}
	return false
}

// PunchItem representa un defecto/pendiente registrado en un proyecto.
// Nunca se borra físicamente en los flujos actuales.
type PunchItem struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Location    string
	Trade       string
	Status      ItemStatus
	PhotoURL    string // vacío = sin foto
	AssignedTo  string // email del sub, vacío = sin asignar
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AssignedAt  *time.Time
}

// Title devuelve el nombre corto, o la descripción si no hay nombre.
func (i *PunchItem) Title() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Description
}

// Clone devuelve una copia independiente del ítem.
func (i *PunchItem) Clone() *PunchItem {
	c := *i
	if i.AssignedAt != nil {
		at := *i.AssignedAt
		c.AssignedAt = &at
	}
	return &c
}
