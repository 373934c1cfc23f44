package repository

import (
	"context"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// TeamMemberRepository define el puerto de persistencia para el equipo de un proyecto.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entity.TeamMember) error
	GetByID(ctx context.Context, id string) (*entity.TeamMember, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.TeamMember, error)
	Delete(ctx context.Context, id string) error
}
