package dto

import (
	"time"

	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

// CreateItemRequest entrada para crear un ítem. Name o Description (al menos uno) y Trade son obligatorios.
type CreateItemRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location"`
	Trade       string `json:"trade" form:"trade" validate:"required"`
}

// UpdateItemRequest edición de campos (solo GC); nil = sin cambio.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Trade       *string `json:"trade"`
}

// AssignItemRequest asignación de un ítem a un email.
type AssignItemRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// BulkSelectionRequest selección para operaciones masivas.
// All=true selecciona todos los ítems de la vista filtrada; si no, se usan IDs
// (recortados a los visibles).
type BulkSelectionRequest struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

// BulkStatusRequest fija un estado explícito en los ítems seleccionados.
type BulkStatusRequest struct {
	BulkSelectionRequest
	Status string `json:"status" validate:"required"`
}

// BulkAssignRequest asigna los ítems seleccionados a un email.
type BulkAssignRequest struct {
	BulkSelectionRequest
	Email string `json:"email" validate:"required,email"`
}

// ItemResponse salida de un ítem con su view-model para el rol que consulta.
type ItemResponse struct {
	ID          string             `json:"id"`
	ProjectID   string             `json:"project_id"`
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Location    string             `json:"location"`
	Trade       string             `json:"trade"`
	Status      string             `json:"status"`
	PhotoURL    string             `json:"photo_url,omitempty"`
	AssignedTo  string             `json:"assigned_to,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	AssignedAt  *time.Time         `json:"assigned_at,omitempty"`
	View        punchlist.ItemView `json:"view"`
}

// ItemListResponse vista derivada de la lista. Stale=true si viene del snapshot local
// porque la lectura principal falló.
type ItemListResponse struct {
	Items   []ItemResponse    `json:"items"`
	Summary punchlist.Summary `json:"summary"`
	Stale   bool              `json:"stale"`
}

// ItemDetailResponse un ítem y su posición dentro de la vista filtrada (nil si el filtro lo excluye).
type ItemDetailResponse struct {
	Item     ItemResponse        `json:"item"`
	Position *punchlist.Position `json:"position,omitempty"`
}

// MailDraftResponse borrador de notificación para abrir en el cliente de correo.
type MailDraftResponse struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MailtoURL string `json:"mailto_url"`
}

// AssignItemResponse ítem asignado + borrador de notificación.
type AssignItemResponse struct {
	Item  ItemResponse      `json:"item"`
	Draft MailDraftResponse `json:"draft"`
}

// BulkResponse resultado de una operación masiva exitosa.
type BulkResponse struct {
	Operation string              `json:"operation"`
	Count     int                 `json:"count"`
	Items     []ItemResponse      `json:"items"`
	Drafts    []MailDraftResponse `json:"drafts,omitempty"`
}

// SuggestTradeRequest texto libre del ítem para sugerir el oficio.
type SuggestTradeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// TradeSuggestionDTO respuesta del modelo: oficio sugerido del conjunto fijo.
type TradeSuggestionDTO struct {
	Trade      string  `json:"trade"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}
