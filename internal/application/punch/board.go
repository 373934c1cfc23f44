package punch

import (
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

// Board estado explícito de una lista: ítems cargados, filtro activo y selección.
// Es inmutable: cada operación devuelve un Board nuevo. La selección es siempre
// un subconjunto de los ítems visibles.
type Board struct {
	items     []*entity.PunchItem
	filter    punchlist.ViewFilter
	selection punchlist.Selection
}

// NewBoard crea un board sin selección.
func NewBoard(items []*entity.PunchItem, filter punchlist.ViewFilter) Board {
	return Board{items: items, filter: filter, selection: punchlist.NewSelection()}
}

// Items ítems cargados, sin filtrar.
func (b Board) Items() []*entity.PunchItem { return b.items }

// Filter filtro activo.
func (b Board) Filter() punchlist.ViewFilter { return b.filter }

// Selection selección actual.
func (b Board) Selection() punchlist.Selection { return b.selection }

// Visible lista derivada del filtro activo.
func (b Board) Visible() []*entity.PunchItem {
	return punchlist.ApplyView(b.items, b.filter)
}

// Select selecciona los ids dados; los que no están visibles se descartan.
func (b Board) Select(ids ...string) Board {
	b.selection = punchlist.NewSelection(ids...).Restrict(punchlist.IDs(b.Visible()))
	return b
}

// Toggle alterna un id visible.
func (b Board) Toggle(id string) Board {
	b.selection = b.selection.Toggle(id).Restrict(punchlist.IDs(b.Visible()))
	return b
}

// ToggleAll alterna entre todos los visibles y ninguno.
func (b Board) ToggleAll() Board {
	b.selection = b.selection.ToggleAll(punchlist.IDs(b.Visible()))
	return b
}

// WithFilter cambia el filtro y recorta la selección a lo que sigue visible.
func (b Board) WithFilter(f punchlist.ViewFilter) Board {
	b.filter = f
	b.selection = b.selection.Restrict(punchlist.IDs(b.Visible()))
	return b
}

// WithItems reemplaza los ítems cargados (recarga) y recorta la selección.
func (b Board) WithItems(items []*entity.PunchItem) Board {
	b.items = items
	b.selection = b.selection.Restrict(punchlist.IDs(b.Visible()))
	return b
}

// Apply reemplaza exactamente los ítems actualizados (por id) y limpia la selección.
// El slice original no se modifica.
func (b Board) Apply(updated []*entity.PunchItem) Board {
	byID := make(map[string]*entity.PunchItem, len(updated))
	for _, it := range updated {
		byID[it.ID] = it
	}
	items := make([]*entity.PunchItem, len(b.items))
	for i, it := range b.items {
		if u, ok := byID[it.ID]; ok {
			items[i] = u
			continue
		}
		items[i] = it
	}
	b.items = items
	b.selection = b.selection.Clear()
	return b
}
