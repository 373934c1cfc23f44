package http_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/repository"
)

// store base de datos en memoria compartida por todos los repositorios de prueba.
type store struct {
	mu        sync.Mutex
	profiles  map[string]*entity.Profile
	companies map[string]*entity.Company
	projects  map[string]*entity.Project
	items     map[string]*entity.PunchItem
	members   map[string]*entity.TeamMember
	revoked   map[string]time.Time
	objects   map[string][]byte
}

func newStore() *store {
	return &store{
		profiles:  map[string]*entity.Profile{},
		companies: map[string]*entity.Company{},
		projects:  map[string]*entity.Project{},
		items:     map[string]*entity.PunchItem{},
		members:   map[string]*entity.TeamMember{},
		revoked:   map[string]time.Time{},
		objects:   map[string][]byte{},
	}
}

// ─── Perfiles y empresas ──────────────────────────────────────────────────────

type profileRepo struct{ s *store }

func (r profileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.profiles {
		if e.Email == p.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *p
	r.s.profiles[p.ID] = &c
	return nil
}

func (r profileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.profiles[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r profileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.Email == email {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r profileRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Profile
	for _, p := range r.s.profiles {
		if p.CompanyID == companyID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

type companyRepo struct{ s *store }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r companyRepo) GetByInviteCode(_ context.Context, code string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.InviteCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type txRunner struct{ s *store }

func (t txRunner) RunSignup(_ context.Context, fn func(repository.CompanyRepository, repository.ProfileRepository) error) error {
	return fn(companyRepo(t), profileRepo(t))
}

type revoker struct{ s *store }

func (r revoker) Revoke(_ context.Context, id string, exp time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.revoked[id] = exp
	return nil
}

func (r revoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.revoked[id]
	return ok, nil
}

// ─── Proyectos, equipo e ítems ───────────────────────────────────────────────

type projectRepo struct{ s *store }

func (r projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r projectRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Project
	for _, p := range r.s.projects {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type teamRepo struct{ s *store }

func (r teamRepo) Create(_ context.Context, m *entity.TeamMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.members[m.ID] = &cp
	return nil
}

func (r teamRepo) GetByID(_ context.Context, id string) (*entity.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r teamRepo) ListByProject(_ context.Context, projectID string) ([]*entity.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TeamMember
	for _, m := range r.s.members {
		if m.ProjectID == projectID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r teamRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.members, id)
	return nil
}

type itemRepo struct{ s *store }

func (r itemRepo) Create(_ context.Context, it *entity.PunchItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.ID] = it.Clone()
	return nil
}

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.PunchItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[id]; ok {
		return it.Clone(), nil
	}
	return nil, nil
}

func (r itemRepo) Update(_ context.Context, it *entity.PunchItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[it.ID] = it.Clone()
	return nil
}

func (r itemRepo) UpdateStatus(_ context.Context, id string, st entity.ItemStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[id].Status = st
	r.s.items[id].UpdatedAt = at
	return nil
}

func (r itemRepo) UpdateStatusByIDs(_ context.Context, ids []string, st entity.ItemStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		r.s.items[id].Status = st
		r.s.items[id].UpdatedAt = at
	}
	return nil
}

func (r itemRepo) AssignByIDs(_ context.Context, ids []string, email string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		a := at
		r.s.items[id].AssignedTo = email
		r.s.items[id].AssignedAt = &a
	}
	return nil
}

func (r itemRepo) list(match func(*entity.PunchItem) bool) ([]*entity.PunchItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PunchItem
	for _, it := range r.s.items {
		if match(it) {
			out = append(out, it.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r itemRepo) ListByProject(_ context.Context, projectID string) ([]*entity.PunchItem, error) {
	return r.list(func(it *entity.PunchItem) bool { return it.ProjectID == projectID })
}

func (r itemRepo) ListByCompany(_ context.Context, _ string) ([]*entity.PunchItem, error) {
	return r.list(func(*entity.PunchItem) bool { return true })
}

func (r itemRepo) ListByAssignee(_ context.Context, email string) ([]*entity.PunchItem, error) {
	return r.list(func(it *entity.PunchItem) bool { return strings.EqualFold(it.AssignedTo, email) })
}

// ─── Adaptadores ─────────────────────────────────────────────────────────────

type memStorage struct{ s *store }

func (m memStorage) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.objects[path] = data
	return path, nil
}

func (m memStorage) PublicURL(handle string) string { return "https://cdn.test/" + handle }

type fakePDF struct{ last punch.Report }

func (f *fakePDF) Generate(_ context.Context, r punch.Report) ([]byte, error) {
	f.last = r
	return []byte("%PDF-1.4 fake"), nil
}
