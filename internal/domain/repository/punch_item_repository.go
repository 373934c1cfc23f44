package repository

import (
	"context"
	"time"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// PunchItemRepository define el puerto de persistencia para PunchItem (DIP).
// GetByID devuelve (nil, nil) si el ítem no existe.
type PunchItemRepository interface {
	Create(ctx context.Context, item *entity.PunchItem) error
	GetByID(ctx context.Context, id string) (*entity.PunchItem, error)
	Update(ctx context.Context, item *entity.PunchItem) error
	UpdateStatus(ctx context.Context, id string, status entity.ItemStatus, at time.Time) error
	// UpdateStatusByIDs y AssignByIDs son una sola sentencia: la base de datos es la unidad de atomicidad.
	UpdateStatusByIDs(ctx context.Context, ids []string, status entity.ItemStatus, at time.Time) error
	AssignByIDs(ctx context.Context, ids []string, email string, at time.Time) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.PunchItem, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PunchItem, error)
	ListByAssignee(ctx context.Context, email string) ([]*entity.PunchItem, error)
}
