package punch_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

var errRemote = errors.New("remote unavailable")

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// ─── Repositorio de ítems en memoria ─────────────────────────────────────────

type itemRepo struct {
	mu        sync.Mutex
	items     map[string]*entity.PunchItem
	failList  bool
	failWrite bool
	bulkCalls int
}

func newItemRepo(items ...*entity.PunchItem) *itemRepo {
	r := &itemRepo{items: map[string]*entity.PunchItem{}}
	for _, it := range items {
		r.items[it.ID] = it.Clone()
	}
	return r
}

func (r *itemRepo) Create(_ context.Context, it *entity.PunchItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errRemote
	}
	r.items[it.ID] = it.Clone()
	return nil
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.PunchItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.items[id]; ok {
		return it.Clone(), nil
	}
	return nil, nil
}

func (r *itemRepo) Update(_ context.Context, it *entity.PunchItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errRemote
	}
	r.items[it.ID] = it.Clone()
	return nil
}

func (r *itemRepo) UpdateStatus(_ context.Context, id string, s entity.ItemStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite {
		return errRemote
	}
	r.items[id].Status = s
	r.items[id].UpdatedAt = at
	return nil
}

func (r *itemRepo) UpdateStatusByIDs(_ context.Context, ids []string, s entity.ItemStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkCalls++
	if r.failWrite {
		return errRemote
	}
	for _, id := range ids {
		r.items[id].Status = s
		r.items[id].UpdatedAt = at
	}
	return nil
}

func (r *itemRepo) AssignByIDs(_ context.Context, ids []string, email string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkCalls++
	if r.failWrite {
		return errRemote
	}
	for _, id := range ids {
		a := at
		r.items[id].AssignedTo = email
		r.items[id].AssignedAt = &a
	}
	return nil
}

func (r *itemRepo) list(match func(*entity.PunchItem) bool) ([]*entity.PunchItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errRemote
	}
	var out []*entity.PunchItem
	for _, it := range r.items {
		if match(it) {
			out = append(out, it.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *itemRepo) ListByProject(_ context.Context, projectID string) ([]*entity.PunchItem, error) {
	return r.list(func(it *entity.PunchItem) bool { return it.ProjectID == projectID })
}

func (r *itemRepo) ListByCompany(_ context.Context, _ string) ([]*entity.PunchItem, error) {
	return r.list(func(*entity.PunchItem) bool { return true })
}

func (r *itemRepo) ListByAssignee(_ context.Context, email string) ([]*entity.PunchItem, error) {
	return r.list(func(it *entity.PunchItem) bool { return strings.EqualFold(it.AssignedTo, email) })
}

func (r *itemRepo) get(id string) *entity.PunchItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Clone()
}

// ─── Proyectos ───────────────────────────────────────────────────────────────

type projectRepo struct {
	projects map[string]*entity.Project
	failGet  bool
}

func (r *projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *projectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	if r.failGet {
		return nil, errRemote
	}
	return r.projects[id], nil
}

func (r *projectRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ─── Adaptadores ─────────────────────────────────────────────────────────────

type memStorage struct {
	objects map[string][]byte
	fail    bool
}

func (s *memStorage) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	if s.fail {
		return "", errRemote
	}
	s.objects[path] = data
	return path, nil
}

func (s *memStorage) PublicURL(handle string) string { return "https://cdn.test/" + handle }

type memCache struct {
	snapshots map[string][]*entity.PunchItem
}

func (c *memCache) SaveSnapshot(_ context.Context, key string, items []*entity.PunchItem) error {
	c.snapshots[key] = items
	return nil
}

func (c *memCache) LoadSnapshot(_ context.Context, key string) ([]*entity.PunchItem, time.Time, bool, error) {
	items, ok := c.snapshots[key]
	return items, t0, ok, nil
}

type recMailer struct {
	sent []punch.MailDraft
	fail bool
}

func (m *recMailer) Send(_ context.Context, d punch.MailDraft) error {
	if m.fail {
		return errRemote
	}
	m.sent = append(m.sent, d)
	return nil
}

type recPublisher struct{ events []punch.ItemEvent }

func (p *recPublisher) Publish(_ context.Context, ev punch.ItemEvent) error {
	p.events = append(p.events, ev)
	return nil
}

// ─── Escenario base ──────────────────────────────────────────────────────────

var (
	gc  = punch.Actor{UserID: "u-gc", CompanyID: "c-1", Role: entity.RoleGC, Email: "gc@acme.test"}
	sub = punch.Actor{UserID: "u-sub", Role: entity.RoleSub, Email: "sparky@elec.test"}
)

func fixtureItems() []*entity.PunchItem {
	return []*entity.PunchItem{
		{ID: "i1", ProjectID: "p-1", Description: "Outlet cover missing", Location: "Room 101", Trade: entity.TradeElectrical, Status: entity.StatusOpen, AssignedTo: "sparky@elec.test", CreatedAt: t0},
		{ID: "i2", ProjectID: "p-1", Description: "Leaking trap", Location: "Kitchen", Trade: entity.TradePlumbing, Status: entity.StatusInProgress, CreatedAt: t0.Add(time.Hour)},
		{ID: "i3", ProjectID: "p-1", Name: "Panel label", Trade: entity.TradeElectrical, Status: entity.StatusReadyForReview, AssignedTo: "sparky@elec.test", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "i4", ProjectID: "p-2", Description: "Other company item", Trade: entity.TradePainting, Status: entity.StatusOpen, CreatedAt: t0},
	}
}

type env struct {
	items     *itemRepo
	projects  *projectRepo
	storage   *memStorage
	cache     *memCache
	mailer    *recMailer
	publisher *recPublisher
	uc        *punch.ItemUseCase
}

func newEnv() *env {
	e := &env{
		items:     newItemRepo(fixtureItems()...),
		storage:   &memStorage{objects: map[string][]byte{}},
		cache:     &memCache{snapshots: map[string][]*entity.PunchItem{}},
		mailer:    &recMailer{},
		publisher: &recPublisher{},
	}
	e.projects = &projectRepo{projects: map[string]*entity.Project{
		"p-1": {ID: "p-1", CompanyID: "c-1", Name: "Tower A"},
		"p-2": {ID: "p-2", CompanyID: "c-2", Name: "Elsewhere"},
	}}
	bulk := punch.NewBulkCoordinator(e.items, e.mailer, e.publisher, nil)
	e.uc = punch.NewItemUseCase(e.items, e.projects, e.storage, e.cache, bulk, e.publisher, nil)
	return e
}
