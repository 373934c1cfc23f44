package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punchlist-api/internal/application/usecase"
)

// CompanyHandler configuración de la empresa del GC.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Settings godoc
// @Summary      Empresa, código de invitación y miembros
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanySettingsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Settings(c *fiber.Ctx) error {
	out, err := h.uc.Settings(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
