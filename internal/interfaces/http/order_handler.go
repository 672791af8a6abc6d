package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/internal/application/orders"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// OrderHandler maneja pedidos y el picking que los convierte en factura.
type OrderHandler struct {
	uc           *orders.UseCase
	orchestrator *fulfillment.Orchestrator
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *orders.UseCase, orchestrator *fulfillment.Orchestrator) *OrderHandler {
	return &OrderHandler{uc: uc, orchestrator: orchestrator}
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		CustomerCUIT: o.CustomerCUIT,
		State:        o.State,
		CreatedAt:    o.CreatedAt,
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return out
}

// Create godoc
// @Summary      Cargar pedido
// @Description  Registra un pedido pendiente con sus líneas. Un cliente en
//               estado deudor no puede cargar pedidos nuevos.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]orders.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, orders.LineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	order, err := h.uc.Create(c.Context(), orders.CreateInput{
		CustomerName: in.CustomerName,
		CustomerCUIT: in.CustomerCUIT,
		Lines:        lines,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerBlocked):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "CUSTOMER_BLOCKED", Message: "el cliente tiene deuda pendiente; regularice el saldo antes de cargar pedidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pedido inválido: requiere cliente y al menos una línea"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderResponse(order))
}

// ProcessPicking godoc
// @Summary      Procesar picking de un pedido
// @Description  Descuenta stock por vencimiento (FEFO), solicita el CAE a
//               AFIP y emite la factura. La operación es todo-o-nada: si
//               algo falla después de la autorización, el stock no se toca
//               y el CAE queda informado para conciliación manual.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PickingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/picking [post]
func (h *OrderHandler) ProcessPicking(c *fiber.Ctx) error {
	result, err := h.orchestrator.ProcessPicking(c.Context(), SessionFrom(c), c.Params("id"))
	if err != nil {
		return mapPickingError(c, err)
	}
	return c.JSON(dto.PickingResponse{
		OrderID:      result.OrderID,
		InvoiceID:    result.InvoiceID,
		CAE:          result.CAE,
		CAEDue:       result.CAEDue,
		Number:       result.Number,
		PointOfSale:  result.PointOfSale,
		NetTotal:     result.NetTotal,
		Tax:          result.Tax,
		GrandTotal:   result.GrandTotal,
		NominalTotal: result.NominalTotal,
		Movements:    result.Movements,
	})
}

// mapPickingError traduce los errores del picking a códigos HTTP. El caso
// de persistencia se evalúa antes que el resto: puede envolver un faltante
// de stock detectado dentro de la transacción, y con un CAE ya emitido el
// operador tiene que ver el código; reintentar a ciegas consumiría otro.
func mapPickingError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	var authErr *domain.AuthorizationError
	var persistErr *domain.PersistenceError
	switch {
	case errors.As(err, &persistErr):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "PERSISTENCE_FAILURE",
			Message: fmt.Sprintf("la factura no pudo guardarse; CAE %s ya autorizado, conciliar manualmente", persistErr.CAE),
		})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_FULFILLED", Message: "el pedido ya fue preparado y facturado"})
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CAE_REJECTED", Message: authErr.Message})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el pedido no tiene líneas"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
