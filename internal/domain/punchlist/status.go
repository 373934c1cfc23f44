// Package punchlist contiene las reglas puras de la punch list: flujo de estados por rol,
// pipeline de vista (filtro → búsqueda → orden), selección y resúmenes.
// No tiene dependencias de infraestructura.
package punchlist

import "github.com/jhoicas/punchlist-api/internal/domain/entity"

// AwaitingReviewLabel texto del botón para un Sub cuyo ítem ya no puede avanzar.
const AwaitingReviewLabel = "Awaiting GC Review"

// NextStatus devuelve el siguiente estado para el rol.
//
//	GC:  open → in-progress → ready-for-review → completed → open (cíclico)
//	Sub: open → in-progress → ready-for-review, y ahí se congela
//
// Cualquier rol distinto de GC sigue el flujo restringido del Sub.
func NextStatus(current entity.ItemStatus, role entity.Role) entity.ItemStatus {
	if role == entity.RoleGC {
		switch current {
		case entity.StatusOpen:
			return entity.StatusInProgress
		case entity.StatusInProgress:
			return entity.StatusReadyForReview
		case entity.StatusReadyForReview:
			return entity.StatusCompleted
		default:
			return entity.StatusOpen
		}
	}
	switch current {
	case entity.StatusOpen:
		return entity.StatusInProgress
	case entity.StatusInProgress:
		return entity.StatusReadyForReview
	default:
		return current
	}
}

// CanUpdateStatus informa si el rol puede avanzar el estado actual.
// ready-for-review y completed quedan reservados al GC (el Sub no puede autocertificar).
func CanUpdateStatus(current entity.ItemStatus, role entity.Role) bool {
	if role == entity.RoleGC {
		return true
	}
	return current != entity.StatusReadyForReview && current != entity.StatusCompleted
}

// StatusButtonLabel texto de la acción de avance. Solo afecta la presentación:
// NextStatus sigue devolviendo el mismo estado para el Sub congelado.
func StatusButtonLabel(current entity.ItemStatus, role entity.Role) string {
	if role != entity.RoleGC &&
		(current == entity.StatusReadyForReview || current == entity.StatusCompleted) {
		return AwaitingReviewLabel
	}
	return "Mark as " + StatusLabel(NextStatus(current, role))
}

// StatusLabel etiqueta legible del estado; un valor desconocido se devuelve tal cual.
func StatusLabel(s entity.ItemStatus) string {
	if style, ok := styles[s]; ok {
		return style.Label
	}
	return string(s)
}

// StatusStyle datos de presentación de un estado (clases CSS e ícono).
type StatusStyle struct {
	Label     string `json:"label"`
	Badge     string `json:"badge"`
	Icon      string `json:"icon"`
	Container string `json:"container"`
}

var styles = map[entity.ItemStatus]StatusStyle{
	entity.StatusOpen: {
		Label: "Open", Badge: "bg-red-100 text-red-800",
		Icon: "alert-circle", Container: "bg-red-50 border-red-200",
	},
	entity.StatusInProgress: {
		Label: "In Progress", Badge: "bg-yellow-100 text-yellow-800",
		Icon: "clock", Container: "bg-yellow-50 border-yellow-200",
	},
	entity.StatusReadyForReview: {
		Label: "Ready for Review", Badge: "bg-blue-100 text-blue-800",
		Icon: "eye", Container: "bg-blue-50 border-blue-200",
	},
	entity.StatusCompleted: {
		Label: "Completed", Badge: "bg-green-100 text-green-800",
		Icon: "check", Container: "bg-green-50 border-green-200",
	},
}

// Presentation devuelve el estilo del estado; gris y sin ícono para valores desconocidos.
func Presentation(s entity.ItemStatus) StatusStyle {
	if style, ok := styles[s]; ok {
		return style
	}
	return StatusStyle{
		Label:     string(s),
		Badge:     "bg-gray-100 text-gray-800",
		Container: "bg-gray-50 border-gray-200",
	}
}
