package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain"
)

// maxPhotoBytes tamaño máximo de la foto adjunta.
const maxPhotoBytes = 10 << 20

// ItemHandler ítems de la punch list: alta, edición, avance de estado, asignación,
// listas filtradas, operaciones masivas y reporte PDF.
type ItemHandler struct {
	items   *punch.ItemUseCase
	reports *punch.ReportUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(items *punch.ItemUseCase, reports *punch.ReportUseCase) *ItemHandler {
	return &ItemHandler{items: items, reports: reports}
}

// Create godoc
// @Summary      Crear ítem (con foto opcional)
// @Description  Acepta JSON o multipart/form-data con el archivo en el campo "photo".
// @Tags         items
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      string                 true   "ID del proyecto"
// @Param        body   body      dto.CreateItemRequest  true   "name/description, location, trade"
// @Param        photo  formData  file                   false  "Foto del ítem"
// @Success      201    {object}  dto.ItemResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, errInvalidBody)
	}
	photo, err := readPhoto(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Create(c.UserContext(), actorFrom(c), c.Params("id"), in, photo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// readPhoto devuelve nil si la petición no es multipart o no trae archivo.
func readPhoto(c *fiber.Ctx) (*punch.Photo, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxPhotoBytes {
		return nil, fmt.Errorf("%w: la foto supera %d MB", domain.ErrInvalidInput, maxPhotoBytes>>20)
	}
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: la foto debe ser una imagen", domain.ErrInvalidInput)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir foto: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("leer foto: %w", err)
	}
	return &punch.Photo{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

// Update godoc
// @Summary      Editar ítem (solo GC)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar el estado del ítem según el rol
// @Description  GC cicla open → in-progress → ready-for-review → completed → open.
// @Description  Sub avanza open → in-progress → ready-for-review; desde ahí responde 409 STATUS_LOCKED.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/advance [post]
func (h *ItemHandler) Advance(c *fiber.Ctx) error {
	out, err := h.items.AdvanceStatus(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar ítem a un email
// @Description  Devuelve el ítem y un borrador de correo (mailto) para el asignado.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.AssignItemRequest  true  "email"
// @Success      200   {object}  dto.AssignItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/assign [post]
func (h *ItemHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignItemRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Assign(c.UserContext(), actorFrom(c), c.Params("id"), in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de un ítem con su posición en la vista filtrada
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        trade   query  string  false  "Oficio (repetible o separado por comas)"
// @Param        status  query  string  false  "Estado o all"
// @Param        q       query  string  false  "Búsqueda"
// @Param        sort    query  string  false  "status|trade|name|location|created_at"
// @Param        dir     query  string  false  "asc|desc"
// @Success      200     {object}  dto.ItemDetailResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Detail(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.Detail(c.UserContext(), actorFrom(c), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListProject godoc
// @Summary      Lista filtrada de ítems del proyecto (GC)
// @Description  stale=true indica que la lectura falló y se sirvió el último snapshot local.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del proyecto"
// @Param        trade   query  string  false  "Oficio (repetible o separado por comas)"
// @Param        status  query  string  false  "Estado o all"
// @Param        q       query  string  false  "Búsqueda"
// @Param        sort    query  string  false  "status|trade|name|location|created_at"
// @Param        dir     query  string  false  "asc|desc"
// @Success      200     {object}  dto.ItemListResponse
// @Router       /api/projects/{id}/items [get]
func (h *ItemHandler) ListProject(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.ListProject(c.UserContext(), actorFrom(c), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Ítems asignados al email de la sesión (Sub)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        trade   query  string  false  "Oficio"
// @Param        status  query  string  false  "Estado o all"
// @Param        q       query  string  false  "Búsqueda"
// @Param        sort    query  string  false  "Campo de orden"
// @Param        dir     query  string  false  "asc|desc"
// @Success      200     {object}  dto.ItemListResponse
// @Router       /api/my/items [get]
func (h *ItemHandler) ListMine(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.items.ListAssigned(c.UserContext(), actorFrom(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkStatus godoc
// @Summary      Fijar estado a la selección
// @Description  La selección se recorta a la vista filtrada (query). all=true selecciona toda la vista.
// @Description  Una sola escritura; si falla nada cambia.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del proyecto"
// @Param        body  body  dto.BulkStatusRequest  true  "ids/all + status"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/items/bulk/status [post]
func (h *ItemHandler) BulkStatus(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.BulkStatusRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.BulkStatus(c.UserContext(), actorFrom(c), c.Params("id"), f, in.BulkSelectionRequest, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkAssign godoc
// @Summary      Asignar la selección a un email
// @Description  Devuelve un borrador de correo por ítem asignado.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del proyecto"
// @Param        body  body  dto.BulkAssignRequest  true  "ids/all + email"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/items/bulk/assign [post]
func (h *ItemHandler) BulkAssign(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.BulkAssignRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.items.BulkAssign(c.UserContext(), actorFrom(c), c.Params("id"), f, in.BulkSelectionRequest, in.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de la vista filtrada
// @Tags         items
// @Security     Bearer
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del proyecto"
// @Param        trade   query  string  false  "Oficio"
// @Param        status  query  string  false  "Estado o all"
// @Param        q       query  string  false  "Búsqueda"
// @Param        sort    query  string  false  "Campo de orden"
// @Param        dir     query  string  false  "asc|desc"
// @Success      200     {file}  binary
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/report [get]
func (h *ItemHandler) Report(c *fiber.Ctx) error {
	f, err := viewFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.reports.Export(c.UserContext(), actorFrom(c), c.Params("id"), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
