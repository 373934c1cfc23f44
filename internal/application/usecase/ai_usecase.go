package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/ports"
	"github.com/jhoicas/punchlist-api/internal/domain"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// AIUseCase sugiere el oficio de un ítem a partir de su texto.
// Aplica un timeout de 10 segundos a cada llamada al LLM.
type AIUseCase struct {
	llm ports.LLMService
}

// NewAIUseCase construye el caso de uso. llm nil = funcionalidad deshabilitada.
func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

// SuggestTrade valida la entrada y delega al LLM. Una respuesta fuera del conjunto
// fijo de oficios se descarta como General con confianza 0.
func (uc *AIUseCase) SuggestTrade(ctx context.Context, req dto.SuggestTradeRequest) (*dto.TradeSuggestionDTO, error) {
	if uc.llm == nil {
		return nil, domain.ErrUnavailable
	}
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: name o description es obligatorio", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := uc.llm.SuggestTrade(ctx, req.Name, req.Description, req.Location, entity.Trades())
	if err != nil {
		return nil, fmt.Errorf("sugerencia IA: %w", err)
	}
	if !entity.ValidTrade(res.Trade) {
		return &dto.TradeSuggestionDTO{Trade: entity.TradeGeneral, Reasoning: res.Reasoning}, nil
	}
	return res, nil
}
