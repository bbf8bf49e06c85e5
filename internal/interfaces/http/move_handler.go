package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
)

// MoveHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MoveHandler struct {
	uc *inventory.MoveUseCase
}

// NewMoveHandler construye el handler.
func NewMoveHandler(uc *inventory.MoveUseCase) *MoveHandler {
	return &MoveHandler{uc: uc}
}

// Create godoc
// @Summary      Crear movimiento de stock
// @Description  Crea el movimiento en draft y le asigna la referencia PREFIX/YYYY/NNNN.
// @Tags         moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMoveRequest  true  "product_id, quantity, move_type (IN|OUT|INT|ADJ), bodegas y ubicaciones"
// @Success      201   {object}  dto.MoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /operations/moves [post]
func (h *MoveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateMove(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. search busca en referencia y ubicaciones.
// @Tags         moves
// @Security     Bearer
// @Produce      json
// @Param        move_type     query  string  false  "IN | OUT | INT | ADJ"
// @Param        status        query  string  false  "draft | waiting | ready | done | cancelled"
// @Param        warehouse_id  query  string  false  "Bodega origen o destino"
// @Param        product_id    query  string  false  "Producto"
// @Param        search        query  string  false  "Texto libre"
// @Param        limit         query  int     false  "Límite"  default(100)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MoveListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /operations/moves [get]
func (h *MoveHandler) List(c *fiber.Ctx) error {
	in := dto.ListMovesRequest{
		MoveType:    c.Query("move_type"),
		Status:      c.Query("status"),
		WarehouseID: c.Query("warehouse_id"),
		ProductID:   c.Query("product_id"),
		Search:      c.Query("search"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", dto.DefaultLimit),
			Offset: c.QueryInt("offset", 0),
		},
	}
	out, err := h.uc.ListMoves(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         moves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /operations/moves/{id} [get]
func (h *MoveHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetMove(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado del movimiento
// @Description  Aplica la tabla de transiciones. Pedir done desde ready liquida el movimiento.
// @Tags         moves
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del movimiento"
// @Param        body  body  dto.ChangeMoveStatusRequest  true  "new_status"
// @Success      200   {object}  dto.MoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /operations/moves/{id}/status [post]
func (h *MoveHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeMoveStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.NewStatus)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar (liquidar) movimiento
// @Description  Aplica el efecto del movimiento sobre el stock y lo deja en done, todo en una transacción.
// @Tags         moves
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /operations/moves/{id}/validate [post]
func (h *MoveHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.ValidateMove(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
