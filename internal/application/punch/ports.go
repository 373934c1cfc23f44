// Package punch orquesta los casos de uso de la punch list: ítems, vista por rol,
// operaciones masivas, notificación de asignación y exportación del reporte.
package punch

import (
	"context"
	"time"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

// Actor identidad de quien ejecuta el caso de uso (extraída del token).
type Actor struct {
	UserID    string
	CompanyID string
	Role      entity.Role
	Email     string
}

// IsGC informa si el actor es contratista general.
func (a Actor) IsGC() bool { return a.Role == entity.RoleGC }

// Photo archivo adjunto al crear un ítem.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PhotoStorage almacenamiento de objetos para las fotos de los ítems.
type PhotoStorage interface {
	// Upload guarda el objeto y devuelve su handle (ruta dentro del bucket).
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	PublicURL(handle string) string
}

// SnapshotCache última lista leída con éxito por alcance; se usa como lectura degradada.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, key string, items []*entity.PunchItem) error
	// LoadSnapshot devuelve ok=false si no hay snapshot para la clave.
	LoadSnapshot(ctx context.Context, key string) (items []*entity.PunchItem, savedAt time.Time, ok bool, err error)
}

// MailSender entrega opcional de los borradores de notificación.
type MailSender interface {
	Send(ctx context.Context, draft MailDraft) error
}

// Tipos de eventos publicados.
const (
	EventItemCreated       = "item.created"
	EventItemUpdated       = "item.updated"
	EventItemStatusChanged = "item.status_changed"
	EventItemAssigned      = "item.assigned"
)

// ItemEvent evento de dominio publicado tras una escritura exitosa.
type ItemEvent struct {
	Type       string            `json:"type"`
	ProjectID  string            `json:"project_id,omitempty"`
	ItemIDs    []string          `json:"item_ids"`
	Status     entity.ItemStatus `json:"status,omitempty"`
	AssignedTo string            `json:"assigned_to,omitempty"`
	ActorID    string            `json:"actor_id"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// EventPublisher publica eventos de ítems (RabbitMQ o no-op).
type EventPublisher interface {
	Publish(ctx context.Context, event ItemEvent) error
}

// Report datos del reporte PDF de una lista filtrada.
type Report struct {
	ProjectName string
	GeneratedAt time.Time
	Filter      punchlist.ViewFilter
	Summary     punchlist.Summary
	Items       []*entity.PunchItem
}

// ReportGenerator renderiza el reporte.
type ReportGenerator interface {
	Generate(ctx context.Context, report Report) ([]byte, error)
}
