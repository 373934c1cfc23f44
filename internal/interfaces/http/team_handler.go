package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/usecase"
)

// TeamHandler destinatarios de asignación de un proyecto.
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Add godoc
// @Summary      Agregar miembro al equipo del proyecto
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.AddTeamMemberRequest  true  "email, trade, name"
// @Success      201   {object}  dto.TeamMemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/team [post]
func (h *TeamHandler) Add(c *fiber.Ctx) error {
	var in dto.AddTeamMemberRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Add(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar equipo del proyecto
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.TeamListResponse
// @Router       /api/projects/{id}/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar miembro del equipo
// @Tags         team
// @Security     Bearer
// @Param        id        path  string  true  "ID del proyecto"
// @Param        memberId  path  string  true  "ID del miembro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/team/{memberId} [delete]
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), actorFrom(c), c.Params("id"), c.Params("memberId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
