package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

// CompanyUseCase configuración de la empresa del GC.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	profiles  repository.ProfileRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(companies repository.CompanyRepository, profiles repository.ProfileRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, profiles: profiles}
}

// Settings devuelve la empresa (con su código de invitación) y sus miembros en orden de alta.
func (uc *CompanyUseCase) Settings(ctx context.Context, actor punch.Actor) (*dto.CompanySettingsResponse, error) {
	if !actor.IsGC() || actor.CompanyID == "" {
		return nil, domain.ErrForbidden
	}
	c, err := uc.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	members, err := uc.profiles.ListByCompany(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listar miembros: %w", err)
	}
	sort.SliceStable(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })

	out := &dto.CompanySettingsResponse{
		Company: dto.CompanyResponse{ID: c.ID, Name: c.Name, InviteCode: c.InviteCode, CreatedAt: c.CreatedAt},
		Members: make([]dto.CompanyMemberResponse, 0, len(members)),
	}
	for _, m := range members {
		out.Members = append(out.Members, dto.CompanyMemberResponse{FullName: m.FullName, Email: m.Email, CreatedAt: m.CreatedAt})
	}
	return out, nil
}
