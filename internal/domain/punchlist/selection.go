package punchlist

import "sort"

// Selection conjunto inmutable de ids seleccionados para operaciones masivas.
// Cada operación devuelve una Selection nueva.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection crea una selección con los ids dados (sin duplicados).
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Has informa si el id está seleccionado.
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len cantidad de ids seleccionados.
func (s Selection) Len() int { return len(s.ids) }

// IsEmpty informa si no hay selección.
func (s Selection) IsEmpty() bool { return len(s.ids) == 0 }

// IDs devuelve los ids ordenados.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle agrega o quita un id.
func (s Selection) Toggle(id string) Selection {
	next := NewSelection(s.IDs()...)
	if next.Has(id) {
		delete(next.ids, id)
	} else if id != "" {
		next.ids[id] = struct{}{}
	}
	return next
}

// ToggleAll alterna entre "todos los ítems visibles" y "ninguno".
// Trabaja sobre la lista filtrada, no sobre todo lo cargado.
func (s Selection) ToggleAll(visibleIDs []string) Selection {
	if len(visibleIDs) > 0 && s.Len() == len(visibleIDs) {
		all := true
		for _, id := range visibleIDs {
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			return NewSelection()
		}
	}
	return NewSelection(visibleIDs...)
}

// Restrict deja solo los ids que siguen visibles (la selección es siempre subconjunto de la vista).
func (s Selection) Restrict(visibleIDs []string) Selection {
	next := NewSelection()
	for _, id := range visibleIDs {
		if s.Has(id) {
			next.ids[id] = struct{}{}
		}
	}
	return next
}

// Clear devuelve una selección vacía.
func (s Selection) Clear() Selection { return NewSelection() }
