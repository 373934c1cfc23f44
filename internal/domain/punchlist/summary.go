package punchlist

import "github.com/jhoicas/punchlist-api/internal/domain/entity"

// Summary conteo por estado de una lista.
type Summary struct {
	Total          int `json:"total"`
	Open           int `json:"open"`
	InProgress     int `json:"in_progress"`
	ReadyForReview int `json:"ready_for_review"`
	Completed      int `json:"completed"`
}

// Summarize cuenta los ítems por estado.
func Summarize(items []*entity.PunchItem) Summary {
	var s Summary
	for _, it := range items {
		s.Total++
		switch it.Status {
		case entity.StatusOpen:
			s.Open++
		case entity.StatusInProgress:
			s.InProgress++
		case entity.StatusReadyForReview:
			s.ReadyForReview++
		case entity.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// Position ubicación de un ítem dentro de la lista filtrada (navegación anterior/siguiente).
type Position struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	PrevID string `json:"prev_id,omitempty"`
	NextID string `json:"next_id,omitempty"`
}

// Locate busca el ítem en la lista; false si no está en la vista.
func Locate(items []*entity.PunchItem, id string) (Position, bool) {
	for i, it := range items {
		if it.ID != id {
			continue
		}
		p := Position{Index: i, Total: len(items)}
		if i > 0 {
			p.PrevID = items[i-1].ID
		}
		if i < len(items)-1 {
			p.NextID = items[i+1].ID
		}
		return p, true
	}
	return Position{}, false
}
