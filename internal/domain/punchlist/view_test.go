package punchlist_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleItems() []*entity.PunchItem {
	return []*entity.PunchItem{
		{ID: "1", Description: "Outlet cover missing", Location: "Room 101", Trade: entity.TradeElectrical, Status: entity.StatusOpen, CreatedAt: t0},
		{ID: "2", Description: "Leaking trap", Location: "Kitchen", Trade: entity.TradePlumbing, Status: entity.StatusCompleted, CreatedAt: t0.Add(time.Hour)},
	}
}

func ids(items []*entity.PunchItem) []string { return punchlist.IDs(items) }

func TestApplyView_SinFiltros_CreatedDesc(t *testing.T) {
	got := punchlist.ApplyView(sampleItems(), punchlist.DefaultViewFilter())
	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestApplyView_FiltroEstado(t *testing.T) {
	f := punchlist.DefaultViewFilter()
	f.Status = string(entity.StatusOpen)
	assert.Equal(t, []string{"1"}, ids(punchlist.ApplyView(sampleItems(), f)))
}

func TestApplyView_BusquedaPorOficio(t *testing.T) {
	f := punchlist.DefaultViewFilter()
	f.Query = "elect"
	assert.Equal(t, []string{"1"}, ids(punchlist.ApplyView(sampleItems(), f)))
}

func TestApplyView_BusquedaInsensibleAMayusculas(t *testing.T) {
	items := sampleItems()
	items[1].AssignedTo = "Plumber@Example.com"

	f := punchlist.DefaultViewFilter()
	f.Query = "PLUMBER@"
	assert.Equal(t, []string{"2"}, ids(punchlist.ApplyView(items, f)))

	f.Query = "room 1"
	assert.Equal(t, []string{"1"}, ids(punchlist.ApplyView(items, f)))
}

func TestApplyView_MultiplesOficios(t *testing.T) {
	items := append(sampleItems(), &entity.PunchItem{ID: "3", Trade: entity.TradeHVAC, Status: entity.StatusOpen, CreatedAt: t0.Add(2 * time.Hour)})

	f := punchlist.DefaultViewFilter()
	f.Trades = []string{entity.TradeElectrical, entity.TradeHVAC}
	assert.Equal(t, []string{"3", "1"}, ids(punchlist.ApplyView(items, f)))
}

// Los filtros conmutan: oficio→estado es igual a estado→oficio.
func TestApplyView_FiltrosConmutan(t *testing.T) {
	items := []*entity.PunchItem{
		{ID: "a", Trade: entity.TradeTile, Status: entity.StatusOpen, CreatedAt: t0},
		{ID: "b", Trade: entity.TradeTile, Status: entity.StatusCompleted, CreatedAt: t0.Add(time.Minute)},
		{ID: "c", Trade: entity.TradeFraming, Status: entity.StatusOpen, CreatedAt: t0.Add(2 * time.Minute)},
	}
	byTrade := punchlist.DefaultViewFilter()
	byTrade.Trades = []string{entity.TradeTile}
	byStatus := punchlist.DefaultViewFilter()
	byStatus.Status = string(entity.StatusOpen)

	tradeThenStatus := punchlist.ApplyView(punchlist.ApplyView(items, byTrade), byStatus)
	statusThenTrade := punchlist.ApplyView(punchlist.ApplyView(items, byStatus), byTrade)
	assert.Equal(t, ids(tradeThenStatus), ids(statusThenTrade))
	assert.Equal(t, []string{"a"}, ids(tradeThenStatus))
}

func TestApplyView_Idempotente(t *testing.T) {
	items := sampleItems()
	f := punchlist.ViewFilter{Status: punchlist.StatusAll, SortBy: punchlist.SortTrade, Direction: punchlist.SortAsc}

	first := punchlist.ApplyView(items, f)
	second := punchlist.ApplyView(items, f)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []string{"1", "2"}, ids(items), "la entrada no se reordena")
}

func TestSortItems_EstableYAusentesAlFinal(t *testing.T) {
	items := []*entity.PunchItem{
		{ID: "1", Location: "B"},
		{ID: "2", Location: ""},
		{ID: "3", Location: "A"},
		{ID: "4", Location: "B"},
		{ID: "5", Location: ""},
	}
	asc := append([]*entity.PunchItem(nil), items...)
	punchlist.SortItems(asc, punchlist.SortLocation, punchlist.SortAsc)
	assert.Equal(t, []string{"3", "1", "4", "2", "5"}, ids(asc))

	desc := append([]*entity.PunchItem(nil), items...)
	punchlist.SortItems(desc, punchlist.SortLocation, punchlist.SortDesc)
	assert.Equal(t, []string{"1", "4", "3", "2", "5"}, ids(desc), "los empates mantienen el orden original")
}

func TestSortItems_NombreUsaDescripcionComoRespaldo(t *testing.T) {
	items := []*entity.PunchItem{
		{ID: "1", Name: "Zeta"},
		{ID: "2", Description: "Alpha"},
	}
	punchlist.SortItems(items, punchlist.SortName, punchlist.SortAsc)
	assert.Equal(t, []string{"2", "1"}, ids(items))
}

func TestSortItems_FechaCeroAlFinal(t *testing.T) {
	items := []*entity.PunchItem{
		{ID: "1"},
		{ID: "2", CreatedAt: t0},
		{ID: "3", CreatedAt: t0.Add(time.Hour)},
	}
	punchlist.SortItems(items, punchlist.SortCreatedAt, punchlist.SortAsc)
	assert.Equal(t, []string{"2", "3", "1"}, ids(items))
}

func TestParseViewFilter(t *testing.T) {
	f, err := punchlist.ParseViewFilter([]string{"Electrical,Plumbing", "Electrical"}, "open", "x", "trade", "ASC")
	require.NoError(t, err)
	assert.Equal(t, []string{entity.TradeElectrical, entity.TradePlumbing}, f.Trades)
	assert.Equal(t, "open", f.Status)
	assert.Equal(t, punchlist.SortTrade, f.SortBy)
	assert.Equal(t, punchlist.SortAsc, f.Direction)
	assert.True(t, f.HasFilters())

	def, err := punchlist.ParseViewFilter(nil, "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, punchlist.DefaultViewFilter(), def)
	assert.False(t, def.HasFilters())

	for _, tc := range []struct {
		trades                []string
		status, sortBy, dir string
	}{
		{trades: []string{"Masonry"}},
		{status: "done"},
		{sortBy: "priority"},
		{dir: "up"},
	} {
		_, err := punchlist.ParseViewFilter(tc.trades, tc.status, "", tc.sortBy, tc.dir)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}
