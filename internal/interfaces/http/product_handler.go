package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/catalog"
	"github.com/vitalcan/haruwen-wms/internal/application/dto"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// ProductHandler maneja el catálogo: productos, consulta por SKU y precios.
type ProductHandler struct {
	uc *catalog.UseCase
}

// NewProductHandler construye el handler de catálogo.
func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Brand:     p.Brand,
		MinStock:  p.MinStock,
		CreatedAt: p.CreatedAt,
	}
}

func toStockViewResponse(v *catalog.StockView) dto.StockViewResponse {
	out := dto.StockViewResponse{
		Product: toProductResponse(v.Product),
		Price:   v.Price,
		Total:   v.Total,
		Status:  v.Status,
	}
	for _, l := range v.Lots {
		out.Lots = append(out.Lots, dto.LotResponse{
			ID:         l.ID,
			LotNumber:  l.LotNumber,
			Expiration: l.Expiration,
			Remaining:  l.Remaining,
			PositionID: l.PositionID,
		})
	}
	return out
}

// Create godoc
// @Summary      Alta de producto
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "nombre, sku, marca, stock_minimo, precio_venta"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(c.Context(), catalog.CreateInput{
		Name:     in.Name,
		SKU:      in.SKU,
		Brand:    in.Brand,
		MinStock: in.MinStock,
		Price:    in.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SKU_EXISTS", Message: "ya existe un producto con ese SKU"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del producto inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// Update godoc
// @Summary      Modificar producto
// @Description  Edita nombre, marca, stock mínimo y precio de venta. El SKU
//               no se modifica.
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "nombre, marca, stock_minimo, precio_venta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.Context(), c.Params("id"), catalog.UpdateInput{
		Name:     in.Name,
		Brand:    in.Brand,
		MinStock: in.MinStock,
		Price:    in.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del producto inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toProductResponse(product))
}

// List godoc
// @Summary      Listar productos
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	products, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toProductResponse(product))
}

// ConsultBySKU godoc
// @Summary      Consulta de stock por SKU
// @Description  Devuelve stock total, lotes en orden de vencimiento y estado
//               respecto del stock mínimo.
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "Código del producto"
// @Success      200  {object}  dto.StockViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consulta/{sku} [get]
func (h *ProductHandler) ConsultBySKU(c *fiber.Ctx) error {
	view, err := h.uc.ConsultBySKU(c.Context(), c.Params("sku"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay producto con ese SKU"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "SKU requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toStockViewResponse(view))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockViewResponse
// @Router       /api/productos/stock-bajo [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	views, err := h.uc.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toStockViewResponse(v))
	}
	return c.JSON(out)
}

// BulkPriceUpdate godoc
// @Summary      Actualización masiva de precios
// @Description  Aplica un porcentaje a los precios de venta; con marca vacía
//               alcanza a todo el catálogo. Solo admin.
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkPriceUpdateRequest  true  "porcentaje, marca (opcional)"
// @Success      200   {object}  dto.BulkPriceUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos/precios-masivo [post]
func (h *ProductHandler) BulkPriceUpdate(c *fiber.Ctx) error {
	var in dto.BulkPriceUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.BulkPriceUpdate(c.Context(), in.Percent, in.Brand)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "porcentaje inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.BulkPriceUpdateResponse{Updated: updated})
}
