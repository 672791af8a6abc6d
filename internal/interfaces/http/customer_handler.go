package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/billing"
	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// CustomerHandler maneja clientes en cuenta corriente y la auditoría de saldos.
type CustomerHandler struct {
	uc       *billing.CustomerUseCase
	balances *billing.BalanceUseCase
}

// NewCustomerHandler construye el handler de clientes.
func NewCustomerHandler(uc *billing.CustomerUseCase, balances *billing.BalanceUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, balances: balances}
}

func toCustomerResponse(cust *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:      cust.ID,
		Name:    cust.Name,
		CUIT:    cust.CUIT,
		Address: cust.Address,
		State:   cust.State,
		Balance: cust.Balance,
	}
}

// Create godoc
// @Summary      Alta de cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "nombre, cuit, dirección"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.Context(), billing.CreateInput{
		Name:    in.Name,
		CUIT:    in.CUIT,
		Address: in.Address,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CUIT_EXISTS", Message: "ya existe un cliente con ese CUIT"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y CUIT son obligatorios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

// List godoc
// @Summary      Listar clientes con saldo
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	customers, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toCustomerResponse(cust))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCustomerResponse(customer))
}

// Audit godoc
// @Summary      Auditoría global de saldos
// @Description  Recalcula el saldo derivado de todos los clientes a partir
//               de facturas y pagos aprobados. Solo admin.
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AuditResponse
// @Router       /api/clientes/auditoria [post]
func (h *CustomerHandler) Audit(c *fiber.Ctx) error {
	count, err := h.balances.AuditAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.AuditResponse{Customers: count})
}
