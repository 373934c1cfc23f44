package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

// TeamUseCase directorio de destinatarios de asignación por proyecto.
type TeamUseCase struct {
	members  repository.TeamMemberRepository
	projects repository.ProjectRepository
}

// NewTeamUseCase construye el caso de uso de equipo.
func NewTeamUseCase(members repository.TeamMemberRepository, projects repository.ProjectRepository) *TeamUseCase {
	return &TeamUseCase{members: members, projects: projects}
}

// Add agrega un miembro (email + oficio obligatorios).
func (uc *TeamUseCase) Add(ctx context.Context, actor punch.Actor, projectID string, in dto.AddTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	email, err := entity.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	trade := strings.TrimSpace(in.Trade)
	if !entity.ValidTrade(trade) {
		return nil, fmt.Errorf("%w: oficio desconocido %q", domain.ErrInvalidInput, in.Trade)
	}
	project, err := punch.LoadCompanyProject(ctx, uc.projects, actor.CompanyID, projectID)
	if err != nil {
		return nil, err
	}
	m := &entity.TeamMember{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		Email:     email,
		Trade:     trade,
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.members.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("agregar miembro: %w", err)
	}
	return toTeamMemberResponse(m), nil
}

// List equipo del proyecto.
func (uc *TeamUseCase) List(ctx context.Context, actor punch.Actor, projectID string) (*dto.TeamListResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	project, err := punch.LoadCompanyProject(ctx, uc.projects, actor.CompanyID, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.members.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listar equipo: %w", err)
	}
	out := &dto.TeamListResponse{Items: make([]dto.TeamMemberResponse, 0, len(list))}
	for _, m := range list {
		out.Items = append(out.Items, *toTeamMemberResponse(m))
	}
	return out, nil
}

// Remove quita un miembro del proyecto. Los ítems ya asignados a su email no cambian.
func (uc *TeamUseCase) Remove(ctx context.Context, actor punch.Actor, projectID, memberID string) error {
	if !actor.IsGC() {
		return domain.ErrForbidden
	}
	project, err := punch.LoadCompanyProject(ctx, uc.projects, actor.CompanyID, projectID)
	if err != nil {
		return err
	}
	m, err := uc.members.GetByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("obtener miembro: %w", err)
	}
	if m == nil || m.ProjectID != project.ID {
		return domain.ErrNotFound
	}
	if err := uc.members.Delete(ctx, m.ID); err != nil {
		return fmt.Errorf("quitar miembro: %w", err)
	}
	return nil
}

func toTeamMemberResponse(m *entity.TeamMember) *dto.TeamMemberResponse {
	return &dto.TeamMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Email:     m.Email,
		Trade:     m.Trade,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}
