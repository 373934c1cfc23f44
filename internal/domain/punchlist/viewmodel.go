package punchlist

import "github.com/jhoicas/punchlist-api/internal/domain/entity"

// ItemView acciones y permisos de un ítem para un rol, calculados una sola vez por respuesta.
type ItemView struct {
	Style       StatusStyle       `json:"style"`
	NextStatus  entity.ItemStatus `json:"next_status"`
	CanUpdate   bool              `json:"can_update"`
	ButtonLabel string            `json:"button_label"`
	CanEdit     bool              `json:"can_edit"`
	CanAssign   bool              `json:"can_assign"`
}

// BuildItemView arma el view-model del ítem para el rol.
func BuildItemView(item *entity.PunchItem, role entity.Role) ItemView {
	return ItemView{
		Style:       Presentation(item.Status),
		NextStatus:  NextStatus(item.Status, role),
		CanUpdate:   CanUpdateStatus(item.Status, role),
		ButtonLabel: StatusButtonLabel(item.Status, role),
		CanEdit:     role == entity.RoleGC,
		CanAssign:   role == entity.RoleGC,
	}
}
