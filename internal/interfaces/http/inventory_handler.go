package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/application/inventory"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// InventoryHandler maneja las operaciones de depósito: recepción, traspaso,
// ajuste y el libro de movimientos.
type InventoryHandler struct {
	uc      *inventory.UseCase
	movRepo repository.MovementRepository
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.UseCase, movRepo repository.MovementRepository) *InventoryHandler {
	return &InventoryHandler{uc: uc, movRepo: movRepo}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Origin:    m.Origin,
		Dest:      m.Dest,
		Quantity:  m.Quantity,
		User:      m.User,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

func mapInventoryError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Receive godoc
// @Summary      Recepción de mercadería
// @Description  Ingresa un lote nuevo a una posición y asienta la ENTRADA
//               con origen PROVEEDOR.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "producto, posición, lote, vencimiento, cantidad"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/recepcion [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.uc.Receive(c.Context(), SessionFrom(c), inventory.ReceiveInput{
		ProductID:  in.ProductID,
		PositionID: in.PositionID,
		LotNumber:  in.LotNumber,
		Expiration: in.Expiration,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LotResponse{
		ID:         lot.ID,
		LotNumber:  lot.LotNumber,
		Expiration: lot.Expiration,
		Remaining:  lot.Remaining,
		PositionID: lot.PositionID,
	})
}

// Transfer godoc
// @Summary      Traspaso entre racks
// @Description  Mueve unidades entre posiciones. El lote activo del origen
//               se reubica entero en el destino.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "producto, origen, destino, cantidad"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/traspaso [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Transfer(c.Context(), SessionFrom(c), inventory.TransferInput{
		ProductID:      in.ProductID,
		FromPositionID: in.FromPositionID,
		ToPositionID:   in.ToPositionID,
		Quantity:       in.Quantity,
	})
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajuste de inventario
// @Description  Corrige el stock de una posición al valor contado. Las
//               observaciones del operador son obligatorias.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "posición, cantidad contada, observaciones"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajuste [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Adjust(c.Context(), SessionFrom(c), inventory.AdjustInput{
		PositionID:   in.PositionID,
		Quantity:     in.Quantity,
		Observations: in.Observations,
	})
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.movRepo.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// ListMovementsByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movimientos/producto/{id} [get]
func (h *InventoryHandler) ListMovementsByProduct(c *fiber.Ctx) error {
	movements, err := h.movRepo.ListByProduct(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}
