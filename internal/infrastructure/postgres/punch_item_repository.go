package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

var _ repository.PunchItemRepository = (*PunchItemRepo)(nil)

// PunchItemRepo implementación de PunchItemRepository sobre PostgreSQL.
type PunchItemRepo struct {
	q Querier
}

// NewPunchItemRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPunchItemRepository(q Querier) *PunchItemRepo {
	return &PunchItemRepo{q: q}
}

const itemColumns = `i.id, i.project_id, i.name, i.description, i.location, i.trade, i.status,
	COALESCE(i.photo_url, ''), COALESCE(i.assigned_to, ''), i.created_by, i.created_at, i.updated_at, i.assigned_at`

// Create persiste un ítem.
func (r *PunchItemRepo) Create(ctx context.Context, it *entity.PunchItem) error {
	query := `
		INSERT INTO punch_items (id, project_id, name, description, location, trade, status,
			photo_url, assigned_to, created_by, created_at, updated_at, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF(lower($9), ''), $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.ProjectID, it.Name, it.Description, it.Location, it.Trade, string(it.Status),
		it.PhotoURL, it.AssignedTo, it.CreatedBy, it.CreatedAt, it.UpdatedAt, it.AssignedAt,
	)
	if err != nil {
		return fmt.Errorf("insert punch item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID; (nil, nil) si no existe.
func (r *PunchItemRepo) GetByID(ctx context.Context, id string) (*entity.PunchItem, error) {
	var it entity.PunchItem
	if err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM punch_items i WHERE i.id = $1`, id), &it); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get punch item: %w", err)
	}
	return &it, nil
}

// Update guarda los campos editables del ítem.
func (r *PunchItemRepo) Update(ctx context.Context, it *entity.PunchItem) error {
	query := `
		UPDATE punch_items SET name = $2, description = $3, location = $4, trade = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, it.ID, it.Name, it.Description, it.Location, it.Trade, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update punch item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de un ítem.
func (r *PunchItemRepo) UpdateStatus(ctx context.Context, id string, status entity.ItemStatus, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE punch_items SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return fmt.Errorf("update punch item status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusByIDs fija el estado de varios ítems en una sola sentencia.
func (r *PunchItemRepo) UpdateStatusByIDs(ctx context.Context, ids []string, status entity.ItemStatus, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE punch_items SET status = $2, updated_at = $3 WHERE id = ANY($1::uuid[])`,
		ids, string(status), at)
	if err != nil {
		return fmt.Errorf("bulk update punch item status: %w", err)
	}
	return nil
}

// AssignByIDs asigna varios ítems a un email en una sola sentencia.
func (r *PunchItemRepo) AssignByIDs(ctx context.Context, ids []string, email string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE punch_items SET assigned_to = lower($2), assigned_at = $3, updated_at = $3 WHERE id = ANY($1::uuid[])`,
		ids, email, at)
	if err != nil {
		return fmt.Errorf("bulk assign punch items: %w", err)
	}
	return nil
}

// ListByProject ítems del proyecto, más recientes primero.
func (r *PunchItemRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.PunchItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM punch_items i
		WHERE i.project_id = $1 ORDER BY i.created_at DESC`, projectID)
}

// ListByCompany ítems de todos los proyectos de la empresa.
func (r *PunchItemRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PunchItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM punch_items i
		JOIN projects p ON p.id = i.project_id
		WHERE p.company_id = $1 ORDER BY i.created_at DESC`, companyID)
}

// ListByAssignee ítems asignados al email, en todos los proyectos.
func (r *PunchItemRepo) ListByAssignee(ctx context.Context, email string) ([]*entity.PunchItem, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM punch_items i
		WHERE i.assigned_to = lower($1) ORDER BY i.created_at DESC`, email)
}

func (r *PunchItemRepo) list(ctx context.Context, query, arg string) ([]*entity.PunchItem, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list punch items: %w", err)
	}
	defer rows.Close()

	var list []*entity.PunchItem
	for rows.Next() {
		var it entity.PunchItem
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("scan punch item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func scanItem(s scanner, it *entity.PunchItem) error {
	var status string
	if err := s.Scan(&it.ID, &it.ProjectID, &it.Name, &it.Description, &it.Location, &it.Trade, &status,
		&it.PhotoURL, &it.AssignedTo, &it.CreatedBy, &it.CreatedAt, &it.UpdatedAt, &it.AssignedAt); err != nil {
		return err
	}
	it.Status = entity.ItemStatus(status)
	return nil
}
