package repository

import (
	"context"

	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile (DIP).
// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Profile, error)
}
