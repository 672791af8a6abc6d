package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/billing"
	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// PaymentHandler maneja la carga y aprobación de pagos.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Method:     p.Method,
		State:      p.State,
		Notes:      p.Notes,
		LoadedBy:   p.LoadedBy,
		ApprovedAt: p.ApprovedAt,
		CreatedAt:  p.CreatedAt,
	}
}

// Register godoc
// @Summary      Cargar pago
// @Description  Registra un pago en estado pendiente. El saldo del cliente
//               recién se mueve cuando el pago se aprueba.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPaymentRequest  true  "cliente, monto, método"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PaymentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.Register(c.Context(), SessionFrom(c), billing.RegisterInput{
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Notes:      in.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente, monto positivo y método son obligatorios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
}

// Approve godoc
// @Summary      Aprobar pago
// @Description  Aprueba un pago pendiente y recalcula el saldo del cliente.
//               Aprobar dos veces el mismo pago no descuenta dos veces.
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pago"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagos/{id}/aprobar [post]
func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	customer, err := h.uc.Approve(c.Context(), SessionFrom(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_APPROVED", Message: "el pago no está pendiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCustomerResponse(customer))
}

// ListPending godoc
// @Summary      Pagos pendientes de aprobación
// @Tags         pagos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/pagos/pendientes [get]
func (h *PaymentHandler) ListPending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	payments, err := h.uc.ListPending(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return c.JSON(out)
}
