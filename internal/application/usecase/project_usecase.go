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

// ProjectUseCase casos de uso de proyectos (solo GC, alcance por empresa).
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso con el puerto de persistencia.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create crea un proyecto en la empresa del GC.
func (uc *ProjectUseCase) Create(ctx context.Context, actor punch.Actor, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if !actor.IsGC() || actor.CompanyID == "" {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	p := &entity.Project{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		Name:      name,
		CreatedBy: actor.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear proyecto: %w", err)
	}
	return toProjectResponse(p), nil
}

// List proyectos de la empresa, más recientes primero.
func (uc *ProjectUseCase) List(ctx context.Context, actor punch.Actor) (*dto.ProjectListResponse, error) {
	if !actor.IsGC() || actor.CompanyID == "" {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("listar proyectos: %w", err)
	}
	out := &dto.ProjectListResponse{Items: make([]dto.ProjectResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, *toProjectResponse(p))
	}
	return out, nil
}

// Get obtiene un proyecto de la empresa.
func (uc *ProjectUseCase) Get(ctx context.Context, actor punch.Actor, id string) (*dto.ProjectResponse, error) {
	if !actor.IsGC() {
		return nil, domain.ErrForbidden
	}
	p, err := punch.LoadCompanyProject(ctx, uc.repo, actor.CompanyID, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
}
