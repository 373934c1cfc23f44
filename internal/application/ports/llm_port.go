package ports

import (
	"context"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// SuggestTrade analiza el texto del ítem y sugiere el oficio responsable dentro de
	// la lista cerrada trades. El contexto debe llevar un timeout.
	SuggestTrade(ctx context.Context, name, description, location string, trades []string) (*dto.TradeSuggestionDTO, error)
}
