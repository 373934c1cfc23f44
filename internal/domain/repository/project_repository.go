package repository

import (
	"context"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Project, error)
}
