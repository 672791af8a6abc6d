package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// PositionHandler maneja las posiciones físicas del depósito (racks).
type PositionHandler struct {
	repo repository.PositionRepository
}

// NewPositionHandler construye el handler de posiciones.
func NewPositionHandler(repo repository.PositionRepository) *PositionHandler {
	return &PositionHandler{repo: repo}
}

func toPositionResponse(p *entity.Position) dto.PositionResponse {
	return dto.PositionResponse{
		ID:        p.ID,
		Quantity:  p.Quantity,
		State:     p.State,
		ProductID: p.ProductID,
	}
}

// Create godoc
// @Summary      Alta de posición
// @Tags         posiciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePositionRequest  true  "id de la posición, ej. A-12"
// @Success      201   {object}  dto.PositionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/posiciones [post]
func (h *PositionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePositionRequest
	if err := c.BodyParser(&in); err != nil || in.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de posición requerido"})
	}
	position := &entity.Position{ID: in.ID, State: entity.PositionEmpty}
	if err := h.repo.Create(position); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "POSITION_EXISTS", Message: "la posición ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toPositionResponse(position))
}

// List godoc
// @Summary      Listar posiciones
// @Tags         posiciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PositionResponse
// @Router       /api/posiciones [get]
func (h *PositionHandler) List(c *fiber.Ctx) error {
	positions, err := h.repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, toPositionResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener posición
// @Tags         posiciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la posición"
// @Success      200  {object}  dto.PositionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posiciones/{id} [get]
func (h *PositionHandler) GetByID(c *fiber.Ctx) error {
	position, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if position == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "posición no encontrada"})
	}
	return c.JSON(toPositionResponse(position))
}
