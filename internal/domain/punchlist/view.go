package punchlist

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// StatusAll valor centinela del filtro de estado: sin filtrar.
const StatusAll = "all"

// SortField campo ordenable de la vista.
type SortField string

const (
	SortStatus    SortField = "status"
	SortTrade     SortField = "trade"
	SortName      SortField = "name"
	SortLocation  SortField = "location"
	SortCreatedAt SortField = "created_at"
)

// SortDirection dirección del orden.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewFilter parámetros de la vista derivada.
// Trades vacío = todos los oficios; Status "all" (o vacío) = todos los estados.
type ViewFilter struct {
	Trades    []string
	Status    string
	Query     string
	SortBy    SortField
	Direction SortDirection
}

// DefaultViewFilter sin filtros, más recientes primero.
func DefaultViewFilter() ViewFilter {
	return ViewFilter{Status: StatusAll, SortBy: SortCreatedAt, Direction: SortDesc}
}

// HasFilters informa si algún filtro restringe la lista (el orden no cuenta).
func (f ViewFilter) HasFilters() bool {
	return len(f.Trades) > 0 || (f.Status != "" && f.Status != StatusAll) || strings.TrimSpace(f.Query) != ""
}

// ParseViewFilter valida los parámetros crudos contra los conjuntos fijos.
// Los oficios pueden venir repetidos o separados por comas.
func ParseViewFilter(trades []string, status, query, sortBy, direction string) (ViewFilter, error) {
	f := DefaultViewFilter()

	seen := map[string]bool{}
	for _, raw := range trades {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			if !entity.ValidTrade(t) {
				return ViewFilter{}, fmt.Errorf("%w: oficio desconocido %q", domain.ErrInvalidInput, t)
			}
			seen[t] = true
			f.Trades = append(f.Trades, t)
		}
	}

	if status != "" && status != StatusAll {
		if !entity.ItemStatus(status).Valid() {
			return ViewFilter{}, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
		}
		f.Status = status
	}

	f.Query = query

	if sortBy != "" {
		switch SortField(sortBy) {
		case SortStatus, SortTrade, SortName, SortLocation, SortCreatedAt:
			f.SortBy = SortField(sortBy)
		default:
			return ViewFilter{}, fmt.Errorf("%w: campo de orden desconocido %q", domain.ErrInvalidInput, sortBy)
		}
	}

	switch SortDirection(strings.ToLower(direction)) {
	case "":
	case SortAsc:
		f.Direction = SortAsc
	case SortDesc:
		f.Direction = SortDesc
	default:
		return ViewFilter{}, fmt.Errorf("%w: dirección de orden desconocida %q", domain.ErrInvalidInput, direction)
	}
	return f, nil
}

// ApplyView produce la lista derivada: (1) oficios, (2) estado, (3) búsqueda, (4) orden estable.
// Devuelve un slice nuevo; la entrada no se modifica. Es idempotente para la misma entrada.
func ApplyView(items []*entity.PunchItem, f ViewFilter) []*entity.PunchItem {
	var trades map[string]bool
	if len(f.Trades) > 0 {
		trades = make(map[string]bool, len(f.Trades))
		for _, t := range f.Trades {
			trades[t] = true
		}
	}

	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(f.Query))

	out := make([]*entity.PunchItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if trades != nil && !trades[it.Trade] {
			continue
		}
		if f.Status != "" && f.Status != StatusAll && string(it.Status) != f.Status {
			continue
		}
		if query != "" && !matchesQuery(fold, it, query) {
			continue
		}
		out = append(out, it)
	}

	SortItems(out, f.SortBy, f.Direction)
	return out
}

func matchesQuery(fold cases.Caser, it *entity.PunchItem, query string) bool {
	for _, field := range []string{it.Name, it.Description, it.Location, it.Trade, it.AssignedTo} {
		if field != "" && strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}

// SortItems ordena en sitio de forma estable. Los valores ausentes (texto vacío, fecha cero)
// van siempre al final, sin importar la dirección; dos ausentes se consideran iguales.
// Un campo desconocido ordena por created_at.
func SortItems(items []*entity.PunchItem, by SortField, dir SortDirection) {
	slices.SortStableFunc(items, func(a, b *entity.PunchItem) int {
		var c int
		var missA, missB bool
		if by == SortCreatedAt || !knownTextField(by) {
			missA, missB = a.CreatedAt.IsZero(), b.CreatedAt.IsZero()
			if !missA && !missB {
				c = compareTime(a.CreatedAt, b.CreatedAt)
			}
		} else {
			va, vb := textValue(a, by), textValue(b, by)
			missA, missB = va == "", vb == ""
			if !missA && !missB {
				c = strings.Compare(va, vb)
			}
		}
		switch {
		case missA && missB:
			return 0
		case missA:
			return 1
		case missB:
			return -1
		}
		if dir == SortDesc {
			return -c
		}
		return c
	})
}

func knownTextField(by SortField) bool {
	switch by {
	case SortStatus, SortTrade, SortName, SortLocation:
		return true
	}
	return false
}

func textValue(it *entity.PunchItem, by SortField) string {
	switch by {
	case SortStatus:
		return string(it.Status)
	case SortTrade:
		return it.Trade
	case SortName:
		return it.Title()
	case SortLocation:
		return it.Location
	}
	return ""
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// IDs devuelve los ids en el orden de la lista.
func IDs(items []*entity.PunchItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
