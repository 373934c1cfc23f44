package punch

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
	"github.com/jhoicas/punchlist-api/pkg/logger"
)

// BulkCommand operación masiva sobre la selección de un Board.
type BulkCommand interface {
	// Name identifica la operación en logs y respuestas.
	Name() string
	Validate() error
	// Persist aplica la operación en una sola llamada al repositorio.
	Persist(ctx context.Context, repo repository.PunchItemRepository, ids []string, at time.Time) error
	// Mutate aplica la operación a la copia local de un ítem.
	Mutate(item *entity.PunchItem, at time.Time)
	// Event describe la operación para los suscriptores.
	Event(ids []string) ItemEvent
}

// BulkStatusCommand fija un estado explícito; no pasa por NextStatus.
type BulkStatusCommand struct {
	Target entity.ItemStatus
}

func (c BulkStatusCommand) Name() string { return "status" }

func (c BulkStatusCommand) Validate() error {
	if !c.Target.Valid() {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, c.Target)
	}
	return nil
}

func (c BulkStatusCommand) Persist(ctx context.Context, repo repository.PunchItemRepository, ids []string, at time.Time) error {
	return repo.UpdateStatusByIDs(ctx, ids, c.Target, at)
}

func (c BulkStatusCommand) Mutate(item *entity.PunchItem, at time.Time) {
	item.Status = c.Target
	item.UpdatedAt = at
}

func (c BulkStatusCommand) Event(ids []string) ItemEvent {
	return ItemEvent{Type: EventItemStatusChanged, ItemIDs: ids, Status: c.Target}
}

// BulkAssignCommand asigna la selección a un email.
type BulkAssignCommand struct {
	Email string
}

func (c BulkAssignCommand) Name() string { return "assign" }

func (c BulkAssignCommand) Validate() error {
	_, err := entity.NormalizeEmail(c.Email)
	return err
}

func (c BulkAssignCommand) Persist(ctx context.Context, repo repository.PunchItemRepository, ids []string, at time.Time) error {
	email, _ := entity.NormalizeEmail(c.Email)
	return repo.AssignByIDs(ctx, ids, email, at)
}

func (c BulkAssignCommand) Mutate(item *entity.PunchItem, at time.Time) {
	email, _ := entity.NormalizeEmail(c.Email)
	item.AssignedTo = email
	item.AssignedAt = &at
	item.UpdatedAt = at
}

func (c BulkAssignCommand) Event(ids []string) ItemEvent {
	email, _ := entity.NormalizeEmail(c.Email)
	return ItemEvent{Type: EventItemAssigned, ItemIDs: ids, AssignedTo: email}
}

// BulkResult resultado de una operación masiva exitosa.
type BulkResult struct {
	Operation string
	Updated   []*entity.PunchItem
	Drafts    []MailDraft
}

// BulkCoordinator ejecuta comandos masivos: una escritura por lote y, solo si tiene
// éxito, la actualización de las copias locales.
type BulkCoordinator struct {
	items     repository.PunchItemRepository
	mailer    MailSender
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewBulkCoordinator construye el coordinador. mailer y publisher son opcionales.
func NewBulkCoordinator(items repository.PunchItemRepository, mailer MailSender, publisher EventPublisher, log *logger.Logger) *BulkCoordinator {
	if log == nil {
		log = logger.Nop()
	}
	return &BulkCoordinator{items: items, mailer: mailer, publisher: publisher, log: log.Component("bulk"), now: time.Now}
}

// Execute aplica cmd a la selección del board.
// Si la escritura falla se devuelve el board original sin cambios y el error;
// una aplicación parcial del lado del servidor no se reconcilia.
func (c *BulkCoordinator) Execute(ctx context.Context, actor Actor, board Board, cmd BulkCommand) (Board, BulkResult, error) {
	ids := board.Selection().IDs()
	if len(ids) == 0 {
		return board, BulkResult{}, domain.ErrEmptySelection
	}
	if err := cmd.Validate(); err != nil {
		return board, BulkResult{}, err
	}

	at := c.now().UTC()
	if err := cmd.Persist(ctx, c.items, ids, at); err != nil {
		c.log.Warn().Err(err).Str("operation", cmd.Name()).Int("count", len(ids)).Msg("operación masiva fallida")
		return board, BulkResult{}, fmt.Errorf("bulk %s: %w", cmd.Name(), err)
	}

	selected := board.Selection()
	updated := make([]*entity.PunchItem, 0, len(ids))
	for _, it := range board.Items() {
		if !selected.Has(it.ID) {
			continue
		}
		u := it.Clone()
		cmd.Mutate(u, at)
		updated = append(updated, u)
	}
	next := board.Apply(updated)
	result := BulkResult{Operation: cmd.Name(), Updated: updated}

	if _, ok := cmd.(BulkAssignCommand); ok {
		for _, it := range updated {
			draft := ComposeAssignmentDraft(it, it.AssignedTo)
			result.Drafts = append(result.Drafts, draft)
			c.deliver(ctx, draft)
		}
	}

	ev := cmd.Event(ids)
	ev.ActorID = actor.UserID
	ev.OccurredAt = at
	if len(updated) > 0 {
		ev.ProjectID = updated[0].ProjectID
	}
	c.publish(ctx, ev)

	c.log.Info().Str("operation", cmd.Name()).Int("count", len(ids)).Str("actor", actor.UserID).Msg("operación masiva aplicada")
	return next, result, nil
}

// deliver envía el borrador si hay SMTP; los errores solo se registran.
func (c *BulkCoordinator) deliver(ctx context.Context, draft MailDraft) {
	if c.mailer == nil {
		return
	}
	if err := c.mailer.Send(ctx, draft); err != nil {
		c.log.Warn().Err(err).Str("to", draft.To).Msg("no se pudo enviar la notificación de asignación")
	}
}

func (c *BulkCoordinator) publish(ctx context.Context, ev ItemEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, ev); err != nil {
		c.log.Warn().Err(err).Str("event", ev.Type).Msg("no se pudo publicar el evento")
	}
}
