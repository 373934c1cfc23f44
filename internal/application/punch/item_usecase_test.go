package punch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_SubeFotoAntesDeInsertar(t *testing.T) {
	e := newEnv()
	res, err := e.uc.Create(context.Background(), gc, "p-1",
		dto.CreateItemRequest{Description: "Cracked tile", Location: "Lobby", Trade: entity.TradeTile},
		&punch.Photo{Filename: "crack.PNG", ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, "open", res.Status)
	assert.Equal(t, "https://cdn.test/p-1/"+res.ID+".png", res.PhotoURL)
	assert.Contains(t, e.storage.objects, "p-1/"+res.ID+".png")
	assert.Equal(t, res.PhotoURL, e.items.get(res.ID).PhotoURL)
	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, punch.EventItemCreated, e.publisher.events[0].Type)
}

func TestCreate_ValidacionAntesDeCualquierEscritura(t *testing.T) {
	cases := []struct {
		name string
		in   dto.CreateItemRequest
	}{
		{"sin nombre ni descripción", dto.CreateItemRequest{Location: "Lobby", Trade: entity.TradeTile}},
		{"sin oficio", dto.CreateItemRequest{Description: "x"}},
		{"oficio desconocido", dto.CreateItemRequest{Description: "x", Trade: "Roofing"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv()
			_, err := e.uc.Create(context.Background(), gc, "p-1", tc.in, &punch.Photo{Data: []byte{1}})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, e.storage.objects, "no debe subir la foto")
			assert.Len(t, e.items.items, len(fixtureItems()))
		})
	}
}

func TestCreate_FalloDeSubidaNoInserta(t *testing.T) {
	e := newEnv()
	e.storage.fail = true
	_, err := e.uc.Create(context.Background(), gc, "p-1",
		dto.CreateItemRequest{Name: "Gap", Trade: entity.TradeDrywall}, &punch.Photo{Data: []byte{1}})
	assert.ErrorIs(t, err, errRemote)
	assert.Len(t, e.items.items, len(fixtureItems()))
}

func TestCreate_SoloGCYSoloSuEmpresa(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Create(context.Background(), sub, "p-1", dto.CreateItemRequest{Name: "x", Trade: entity.TradeGeneral}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.uc.Create(context.Background(), gc, "p-2", dto.CreateItemRequest{Name: "x", Trade: entity.TradeGeneral}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Update ──────────────────────────────────────────────────────────────────

func TestUpdate_CambiaSoloCamposEnviados(t *testing.T) {
	e := newEnv()
	loc := "Room 102"
	res, err := e.uc.Update(context.Background(), gc, "i1", dto.UpdateItemRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Room 102", res.Location)
	assert.Equal(t, "Outlet cover missing", res.Description)

	empty := ""
	_, err = e.uc.Update(context.Background(), gc, "i1", dto.UpdateItemRequest{Description: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Outlet cover missing", e.items.get("i1").Description)
}

// ─── AdvanceStatus ───────────────────────────────────────────────────────────

func TestAdvanceStatus_SubAvanzaHastaRevision(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	res, err := e.uc.AdvanceStatus(ctx, sub, "i1")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", res.Status)

	res, err = e.uc.AdvanceStatus(ctx, sub, "i1")
	require.NoError(t, err)
	assert.Equal(t, "ready-for-review", res.Status)
	assert.False(t, res.View.CanUpdate)
	assert.Equal(t, punchlist.AwaitingReviewLabel, res.View.ButtonLabel)

	_, err = e.uc.AdvanceStatus(ctx, sub, "i1")
	assert.ErrorIs(t, err, domain.ErrStatusLocked)
	assert.Equal(t, entity.StatusReadyForReview, e.items.get("i1").Status)
}

func TestAdvanceStatus_SubNoVeItemsNoAsignados(t *testing.T) {
	e := newEnv()
	_, err := e.uc.AdvanceStatus(context.Background(), sub, "i2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvanceStatus_GCCierraCiclo(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	res, err := e.uc.AdvanceStatus(ctx, gc, "i3")
	require.NoError(t, err)
	assert.Equal(t, "completed", res.Status)

	res, err = e.uc.AdvanceStatus(ctx, gc, "i3")
	require.NoError(t, err)
	assert.Equal(t, "open", res.Status)
}

func TestAdvanceStatus_FalloRemotoNoCambiaEstado(t *testing.T) {
	e := newEnv()
	e.items.failWrite = true
	_, err := e.uc.AdvanceStatus(context.Background(), gc, "i1")
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, entity.StatusOpen, e.items.get("i1").Status)
}

// ─── Assign ──────────────────────────────────────────────────────────────────

func TestAssign_DevuelveBorradorYEnvia(t *testing.T) {
	e := newEnv()
	res, err := e.uc.Assign(context.Background(), gc, "i2", " Plumber@Pipes.test ")
	require.NoError(t, err)

	assert.Equal(t, "plumber@pipes.test", res.Item.AssignedTo)
	require.NotNil(t, res.Item.AssignedAt)
	assert.Equal(t, "Punch List Item Assigned: Plumbing", res.Draft.Subject)
	assert.Equal(t, "plumber@pipes.test", res.Draft.To)
	assert.Len(t, e.mailer.sent, 1)
	assert.Equal(t, "plumber@pipes.test", e.items.get("i2").AssignedTo)
}

func TestAssign_EmailInvalido(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Assign(context.Background(), gc, "i2", "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, e.items.bulkCalls)
}

// ─── Listas ──────────────────────────────────────────────────────────────────

func TestListProject_AplicaVistaYResumen(t *testing.T) {
	e := newEnv()
	f, err := punchlist.ParseViewFilter([]string{"Electrical"}, "", "", "", "")
	require.NoError(t, err)

	res, err := e.uc.ListProject(context.Background(), gc, "p-1", f)
	require.NoError(t, err)
	assert.False(t, res.Stale)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "i3", res.Items[0].ID)
	assert.Equal(t, "i1", res.Items[1].ID)
	assert.Equal(t, 2, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.ReadyForReview)
}

func TestListProject_LecturaDegradadaUsaSnapshot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.uc.ListProject(ctx, gc, "p-1", punchlist.DefaultViewFilter())
	require.NoError(t, err)

	e.items.failList = true
	res, err := e.uc.ListProject(ctx, gc, "p-1", punchlist.DefaultViewFilter())
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Len(t, res.Items, 3)
}

func TestListProject_StoreCaidoUsaSnapshot(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.uc.ListProject(ctx, gc, "p-1", punchlist.DefaultViewFilter())
	require.NoError(t, err)

	e.projects.failGet = true
	e.items.failList = true
	res, err := e.uc.ListProject(ctx, gc, "p-1", punchlist.DefaultViewFilter())
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Len(t, res.Items, 3)

	other := gc
	other.CompanyID = "c-2"
	_, err = e.uc.ListProject(ctx, other, "p-1", punchlist.DefaultViewFilter())
	assert.ErrorIs(t, err, errRemote, "el snapshot de otra empresa no se comparte")
}

func TestListProject_SinSnapshotDevuelveError(t *testing.T) {
	e := newEnv()
	e.items.failList = true
	_, err := e.uc.ListProject(context.Background(), gc, "p-1", punchlist.DefaultViewFilter())
	assert.ErrorIs(t, err, errRemote)
}

func TestListAssigned_SoloItemsDelSub(t *testing.T) {
	e := newEnv()
	res, err := e.uc.ListAssigned(context.Background(), sub, punchlist.DefaultViewFilter())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	for _, it := range res.Items {
		assert.Equal(t, "sparky@elec.test", it.AssignedTo)
		assert.False(t, it.View.CanEdit)
	}
}

// ─── Detail ──────────────────────────────────────────────────────────────────

func TestDetail_PosicionEnVistaFiltrada(t *testing.T) {
	e := newEnv()
	res, err := e.uc.Detail(context.Background(), gc, "i1", punchlist.DefaultViewFilter())
	require.NoError(t, err)
	require.NotNil(t, res.Position)
	assert.Equal(t, 2, res.Position.Index)
	assert.Equal(t, 3, res.Position.Total)
	assert.Equal(t, "i2", res.Position.PrevID)
	assert.Empty(t, res.Position.NextID)

	f, err := punchlist.ParseViewFilter([]string{"Plumbing"}, "", "", "", "")
	require.NoError(t, err)
	res, err = e.uc.Detail(context.Background(), gc, "i1", f)
	require.NoError(t, err)
	assert.Nil(t, res.Position, "el filtro excluye el ítem")
}

func TestDetail_OtraEmpresaNoEncontrado(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Detail(context.Background(), gc, "i4", punchlist.DefaultViewFilter())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
