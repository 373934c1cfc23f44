package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `p.id, p.email, p.password_hash, p.full_name, p.role,
	COALESCE(p.company_id::text, ''), COALESCE(c.name, ''), p.created_at, p.updated_at`

const profileFrom = ` FROM profiles p LEFT JOIN companies c ON c.id = p.company_id`

// Create persiste un perfil. Email duplicado devuelve domain.ErrEmailAlreadyExists.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.PasswordHash, p.FullName, string(p.Role), p.CompanyID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+profileFrom+` WHERE p.id = $1`, id)
}

// GetByEmail obtiene un perfil por email (normalizado en minúsculas).
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+profileFrom+` WHERE p.email = lower($1)`, email)
}

// ListByCompany perfiles de la empresa en orden de alta.
func (r *ProfileRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Profile, error) {
	rows, err := r.q.Query(ctx, `SELECT `+profileColumns+profileFrom+` WHERE p.company_id = $1 ORDER BY p.created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := scanProfile(rows, &p); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProfileRepo) getOne(ctx context.Context, query, arg string) (*entity.Profile, error) {
	var p entity.Profile
	if err := scanProfile(r.q.QueryRow(ctx, query, arg), &p); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner, p *entity.Profile) error {
	var role string
	if err := s.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &role,
		&p.CompanyID, &p.CompanyName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Role = entity.Role(role)
	return nil
}
