package punch

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
	"github.com/jhoicas/punchlist-api/pkg/logger"
)

// ItemUseCase casos de uso sobre ítems de la punch list.
type ItemUseCase struct {
	items     repository.PunchItemRepository
	projects  repository.ProjectRepository
	storage   PhotoStorage
	cache     SnapshotCache
	bulk      *BulkCoordinator
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewItemUseCase construye el caso de uso. storage, cache y publisher pueden ser nil.
func NewItemUseCase(
	items repository.PunchItemRepository,
	projects repository.ProjectRepository,
	storage PhotoStorage,
	cache SnapshotCache,
	bulk *BulkCoordinator,
	publisher EventPublisher,
	log *logger.Logger,
) *ItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemUseCase{
		items: items, projects: projects, storage: storage, cache: cache,
		bulk: bulk, publisher: publisher, log: log.Component("items"), now: time.Now,
	}
}

// Create crea un ítem (solo GC). Valida antes de cualquier escritura; si hay foto,
// primero la sube y después inserta el ítem con su URL. El estado inicial es siempre open.
func (uc *ItemUseCase) Create(ctx context.Context, actor Actor, projectID string, in dto.CreateItemRequest, photo *Photo) (*dto.ItemResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	name, desc, loc, trade := strings.TrimSpace(in.Name), strings.TrimSpace(in.Description), strings.TrimSpace(in.Location), strings.TrimSpace(in.Trade)
	if err := validateItemFields(name, desc, trade); err != nil {
		return nil, err
	}
	if photo != nil && len(photo.Data) > 0 && uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento de fotos no configurado", domain.ErrUnavailable)
	}
	project, err := uc.loadProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	item := &entity.PunchItem{
		ID:          uuid.New().String(),
		ProjectID:   project.ID,
		Name:        name,
		Description: desc,
		Location:    loc,
		Trade:       trade,
		Status:      entity.StatusOpen,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if photo != nil && len(photo.Data) > 0 {
		objectPath := path.Join(project.ID, item.ID+photoExt(photo))
		handle, err := uc.storage.Upload(ctx, objectPath, photo.ContentType, photo.Data)
		if err != nil {
			return nil, fmt.Errorf("subir foto: %w", err)
		}
		item.PhotoURL = uc.storage.PublicURL(handle)
	}

	if err := uc.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear ítem: %w", err)
	}
	uc.publish(ctx, ItemEvent{Type: EventItemCreated, ProjectID: item.ProjectID, ItemIDs: []string{item.ID}, Status: item.Status, ActorID: actor.UserID, OccurredAt: now})
	return ToItemResponse(item, actor.Role), nil
}

// Update edita campos del ítem (solo GC) con las mismas validaciones que Create.
func (uc *ItemUseCase) Update(ctx context.Context, actor Actor, itemID string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	next := item.Clone()
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		next.Location = strings.TrimSpace(*in.Location)
	}
	if in.Trade != nil {
		next.Trade = strings.TrimSpace(*in.Trade)
	}
	if err := validateItemFields(next.Name, next.Description, next.Trade); err != nil {
		return nil, err
	}
	next.UpdatedAt = uc.now().UTC()
	if err := uc.items.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("actualizar ítem: %w", err)
	}
	uc.publish(ctx, ItemEvent{Type: EventItemUpdated, ProjectID: next.ProjectID, ItemIDs: []string{next.ID}, ActorID: actor.UserID, OccurredAt: next.UpdatedAt})
	return ToItemResponse(next, actor.Role), nil
}

// AdvanceStatus avanza el ítem al siguiente estado según el rol.
// Un Sub solo puede avanzar ítems asignados a su email y nunca más allá de ready-for-review.
func (uc *ItemUseCase) AdvanceStatus(ctx context.Context, actor Actor, itemID string) (*dto.ItemResponse, error) {
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	if !punchlist.CanUpdateStatus(item.Status, actor.Role) {
		return nil, domain.ErrStatusLocked
	}
	next := item.Clone()
	next.Status = punchlist.NextStatus(item.Status, actor.Role)
	next.UpdatedAt = uc.now().UTC()
	if err := uc.items.UpdateStatus(ctx, next.ID, next.Status, next.UpdatedAt); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	uc.log.Debug().Str("item_id", next.ID).Str("from", string(item.Status)).Str("to", string(next.Status)).Msg("estado avanzado")
	uc.publish(ctx, ItemEvent{Type: EventItemStatusChanged, ProjectID: next.ProjectID, ItemIDs: []string{next.ID}, Status: next.Status, ActorID: actor.UserID, OccurredAt: next.UpdatedAt})
	return ToItemResponse(next, actor.Role), nil
}

// Assign asigna un ítem a un email (solo GC) y devuelve el borrador de notificación.
func (uc *ItemUseCase) Assign(ctx context.Context, actor Actor, itemID, email string) (*dto.AssignItemResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	cmd := BulkAssignCommand{Email: email}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	board := NewBoard([]*entity.PunchItem{item}, punchlist.DefaultViewFilter()).Select(item.ID)
	_, res, err := uc.bulk.Execute(ctx, actor, board, cmd)
	if err != nil {
		return nil, err
	}
	return &dto.AssignItemResponse{
		Item:  *ToItemResponse(res.Updated[0], actor.Role),
		Draft: ToMailDraftResponse(res.Drafts[0]),
	}, nil
}

// ListProject lista los ítems de un proyecto (solo GC) con la vista aplicada.
func (uc *ItemUseCase) ListProject(ctx context.Context, actor Actor, projectID string, f punchlist.ViewFilter) (*dto.ItemListResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	key := projectSnapshotKey(actor.CompanyID, projectID)
	project, err := uc.loadProject(ctx, actor, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// Store caído: la clave del snapshot ya incluye la empresa del actor.
		cached, ok := uc.snapshot(ctx, key, err)
		if !ok {
			return nil, err
		}
		return uc.listResponse(cached, f, actor.Role, true), nil
	}
	items, stale, err := uc.readWithFallback(ctx, key, func() ([]*entity.PunchItem, error) {
		return uc.items.ListByProject(ctx, project.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.listResponse(items, f, actor.Role, stale), nil
}

// ListAssigned lista los ítems asignados al email del Sub en todos los proyectos.
func (uc *ItemUseCase) ListAssigned(ctx context.Context, actor Actor, f punchlist.ViewFilter) (*dto.ItemListResponse, error) {
	if actor.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	key := assigneeSnapshotKey(actor.Email)
	items, stale, err := uc.readWithFallback(ctx, key, func() ([]*entity.PunchItem, error) {
		return uc.items.ListByAssignee(ctx, strings.ToLower(actor.Email))
	})
	if err != nil {
		return nil, err
	}
	return uc.listResponse(items, f, actor.Role, stale), nil
}

// Detail devuelve un ítem con su posición dentro de la vista filtrada de su alcance
// (proyecto para GC, ítems asignados para Sub).
func (uc *ItemUseCase) Detail(ctx context.Context, actor Actor, itemID string, f punchlist.ViewFilter) (*dto.ItemDetailResponse, error) {
	item, err := uc.loadItem(ctx, actor, itemID)
	if err != nil {
		return nil, err
	}
	var scope []*entity.PunchItem
	if actor.IsGC() {
		scope, err = uc.items.ListByProject(ctx, item.ProjectID)
	} else {
		scope, err = uc.items.ListByAssignee(ctx, strings.ToLower(actor.Email))
	}
	out := &dto.ItemDetailResponse{Item: *ToItemResponse(item, actor.Role)}
	if err != nil {
		// Sin lista no hay navegación, pero el ítem sí se puede mostrar.
		uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("no se pudo calcular la posición del ítem")
		return out, nil
	}
	if pos, ok := punchlist.Locate(punchlist.ApplyView(scope, f), item.ID); ok {
		out.Position = &pos
	}
	return out, nil
}

// BulkStatus fija el estado de la selección dentro de la vista filtrada del proyecto.
func (uc *ItemUseCase) BulkStatus(ctx context.Context, actor Actor, projectID string, f punchlist.ViewFilter, sel dto.BulkSelectionRequest, status string) (*dto.BulkResponse, error) {
	return uc.runBulk(ctx, actor, projectID, f, sel, BulkStatusCommand{Target: entity.ItemStatus(status)})
}

// BulkAssign asigna la selección dentro de la vista filtrada del proyecto.
func (uc *ItemUseCase) BulkAssign(ctx context.Context, actor Actor, projectID string, f punchlist.ViewFilter, sel dto.BulkSelectionRequest, email string) (*dto.BulkResponse, error) {
	return uc.runBulk(ctx, actor, projectID, f, sel, BulkAssignCommand{Email: email})
}

// runBulk siempre lee datos frescos: nunca opera sobre el snapshot local.
func (uc *ItemUseCase) runBulk(ctx context.Context, actor Actor, projectID string, f punchlist.ViewFilter, sel dto.BulkSelectionRequest, cmd BulkCommand) (*dto.BulkResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	if !sel.All && len(sel.IDs) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	project, err := uc.loadProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}

	board := NewBoard(items, f)
	if sel.All {
		board = board.ToggleAll()
	} else {
		board = board.Select(sel.IDs...)
	}
	_, res, err := uc.bulk.Execute(ctx, actor, board, cmd)
	if err != nil {
		return nil, err
	}

	out := &dto.BulkResponse{Operation: res.Operation, Count: len(res.Updated)}
	for _, it := range res.Updated {
		out.Items = append(out.Items, *ToItemResponse(it, actor.Role))
	}
	for _, d := range res.Drafts {
		out.Drafts = append(out.Drafts, ToMailDraftResponse(d))
	}
	return out, nil
}

// readWithFallback lee la lista; si falla, sustituye el último snapshot guardado (stale=true).
// Solo se devuelve error cuando tampoco hay snapshot.
func (uc *ItemUseCase) readWithFallback(ctx context.Context, key string, read func() ([]*entity.PunchItem, error)) ([]*entity.PunchItem, bool, error) {
	items, err := read()
	if err == nil {
		if uc.cache != nil {
			if cerr := uc.cache.SaveSnapshot(ctx, key, items); cerr != nil {
				uc.log.Warn().Err(cerr).Str("key", key).Msg("no se pudo guardar el snapshot")
			}
		}
		return items, false, nil
	}
	cached, ok := uc.snapshot(ctx, key, err)
	if !ok {
		return nil, false, fmt.Errorf("listar ítems: %w", err)
	}
	return cached, true, nil
}

// snapshot devuelve la última lista guardada para key tras un fallo de lectura (cause).
func (uc *ItemUseCase) snapshot(ctx context.Context, key string, cause error) ([]*entity.PunchItem, bool) {
	if uc.cache == nil {
		return nil, false
	}
	cached, savedAt, ok, err := uc.cache.LoadSnapshot(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	uc.log.Warn().Err(cause).Str("key", key).Time("snapshot_at", savedAt).Msg("lectura degradada: usando snapshot local")
	return cached, true
}

func (uc *ItemUseCase) listResponse(items []*entity.PunchItem, f punchlist.ViewFilter, role entity.Role, stale bool) *dto.ItemListResponse {
	visible := punchlist.ApplyView(items, f)
	out := &dto.ItemListResponse{
		Items:   make([]dto.ItemResponse, 0, len(visible)),
		Summary: punchlist.Summarize(visible),
		Stale:   stale,
	}
	for _, it := range visible {
		out.Items = append(out.Items, *ToItemResponse(it, role))
	}
	return out
}

// loadProject devuelve ErrNotFound si el proyecto no existe o es de otra empresa.
func (uc *ItemUseCase) loadProject(ctx context.Context, actor Actor, projectID string) (*entity.Project, error) {
	return LoadCompanyProject(ctx, uc.projects, actor.CompanyID, projectID)
}

// loadItem aplica el alcance del actor: GC ve los ítems de su empresa, Sub solo los asignados a su email.
func (uc *ItemUseCase) loadItem(ctx context.Context, actor Actor, itemID string) (*entity.PunchItem, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("obtener ítem: %w", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsGC() {
		if _, err := uc.loadProject(ctx, actor, item.ProjectID); err != nil {
			return nil, err
		}
		return item, nil
	}
	if actor.Email == "" || !strings.EqualFold(item.AssignedTo, actor.Email) {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *ItemUseCase) publish(ctx context.Context, ev ItemEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", ev.Type).Msg("no se pudo publicar el evento")
	}
}

// LoadCompanyProject obtiene el proyecto validando que pertenezca a la empresa.
func LoadCompanyProject(ctx context.Context, projects repository.ProjectRepository, companyID, projectID string) (*entity.Project, error) {
	if projectID == "" || companyID == "" {
		return nil, domain.ErrNotFound
	}
	p, err := projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("obtener proyecto: %w", err)
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func validateItemFields(name, description, trade string) error {
	if name == "" && description == "" {
		return fmt.Errorf("%w: name o description es obligatorio", domain.ErrInvalidInput)
	}
	if trade == "" {
		return fmt.Errorf("%w: trade es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidTrade(trade) {
		return fmt.Errorf("%w: oficio desconocido %q", domain.ErrInvalidInput, trade)
	}
	return nil
}

func photoExt(p *Photo) string {
	if ext := strings.ToLower(path.Ext(p.Filename)); ext != "" {
		return ext
	}
	switch p.ContentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	}
	return ".jpg"
}

func projectSnapshotKey(companyID, projectID string) string {
	return "company:" + companyID + ":project:" + projectID
}

func assigneeSnapshotKey(email string) string {
	return "assignee:" + strings.ToLower(email)
}

// ToItemResponse mapea un ítem y su view-model para el rol.
func ToItemResponse(it *entity.PunchItem, role entity.Role) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:          it.ID,
		ProjectID:   it.ProjectID,
		Name:        it.Name,
		Description: it.Description,
		Location:    it.Location,
		Trade:       it.Trade,
		Status:      string(it.Status),
		PhotoURL:    it.PhotoURL,
		AssignedTo:  it.AssignedTo,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
		AssignedAt:  it.AssignedAt,
		View:        punchlist.BuildItemView(it, role),
	}
}

// ToMailDraftResponse mapea el borrador a su DTO.
func ToMailDraftResponse(d MailDraft) dto.MailDraftResponse {
	return dto.MailDraftResponse{To: d.To, Subject: d.Subject, Body: d.Body, MailtoURL: d.MailtoURL}
}
