package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

var _ repository.TeamMemberRepository = (*TeamMemberRepo)(nil)

// TeamMemberRepo implementación de TeamMemberRepository sobre PostgreSQL.
type TeamMemberRepo struct {
	q Querier
}

// NewTeamMemberRepository construye el adaptador.
func NewTeamMemberRepository(q Querier) *TeamMemberRepo {
	return &TeamMemberRepo{q: q}
}

// Create agrega un miembro al proyecto.
func (r *TeamMemberRepo) Create(ctx context.Context, m *entity.TeamMember) error {
	query := `
		INSERT INTO team_members (id, project_id, email, trade, name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, m.ID, m.ProjectID, m.Email, m.Trade, m.Name, m.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro por ID.
func (r *TeamMemberRepo) GetByID(ctx context.Context, id string) (*entity.TeamMember, error) {
	var m entity.TeamMember
	err := r.q.QueryRow(ctx,
		`SELECT id, project_id, email, trade, name, created_at FROM team_members WHERE id = $1`, id,
	).Scan(&m.ID, &m.ProjectID, &m.Email, &m.Trade, &m.Name, &m.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &m, nil
}

// ListByProject equipo del proyecto ordenado por oficio y email.
func (r *TeamMemberRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.TeamMember, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, project_id, email, trade, name, created_at FROM team_members
		 WHERE project_id = $1 ORDER BY trade, email`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var list []*entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Email, &m.Trade, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete quita un miembro. Devuelve domain.ErrNotFound si no existía.
func (r *TeamMemberRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
