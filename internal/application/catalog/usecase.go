package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/fefo"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// Estados de salud del stock de un producto respecto de su mínimo.
const (
	StockOut      = "sin stock"
	StockCritical = "critico"
	StockHealthy  = "saludable"
)

// UseCase administra el catálogo: productos, precios y consultas de stock.
type UseCase struct {
	productRepo repository.ProductRepository
	priceRepo   repository.PriceRepository
	lotRepo     repository.LotRepository
	posRepo     repository.PositionRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(
	productRepo repository.ProductRepository,
	priceRepo repository.PriceRepository,
	lotRepo repository.LotRepository,
	posRepo repository.PositionRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		productRepo: productRepo,
		priceRepo:   priceRepo,
		lotRepo:     lotRepo,
		posRepo:     posRepo,
		log:         log,
	}
}

// CreateInput alta de producto.
type CreateInput struct {
	Name     string
	SKU      string
	Brand    string
	MinStock int64
	Price    decimal.Decimal
}

// Create da de alta un producto con su precio de venta.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	if in.Name == "" || in.SKU == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		SKU:       in.SKU,
		Brand:     in.Brand,
		MinStock:  in.MinStock,
		CreatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	if in.Price.GreaterThan(decimal.Zero) {
		price := &entity.Price{ProductID: product.ID, SalePrice: in.Price, UpdatedAt: now}
		if err := uc.priceRepo.Upsert(price); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// UpdateInput datos editables de un producto. El SKU no se cambia: es el
// código con el que el depósito identifica la mercadería.
type UpdateInput struct {
	Name     string
	Brand    string
	MinStock int64
	Price    decimal.Decimal
}

// Update modifica nombre, marca, stock mínimo y precio de venta.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Product, error) {
	if in.Name == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Name = in.Name
	product.Brand = in.Brand
	product.MinStock = in.MinStock
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	if in.Price.GreaterThan(decimal.Zero) {
		price := &entity.Price{ProductID: product.ID, SalePrice: in.Price, UpdatedAt: time.Now()}
		if err := uc.priceRepo.Upsert(price); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Get devuelve un producto por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List devuelve los productos paginados.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.List(limit, offset)
}

// StockView la foto completa de un producto para el mostrador: stock total,
// lotes en orden de vencimiento y estado respecto del mínimo.
type StockView struct {
	Product *entity.Product
	Price   decimal.Decimal
	Total   int64
	Lots    []entity.Lot
	Status  string
}

// ConsultBySKU responde la consulta operativa por código: cuánto hay, en qué
// lotes, qué vence primero y si el stock está por debajo del mínimo.
func (uc *UseCase) ConsultBySKU(ctx context.Context, sku string) (*StockView, error) {
	if sku == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	lots, err := uc.lotRepo.ListActiveByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	total := fefo.Available(lots)

	price := decimal.Zero
	if p, err := uc.priceRepo.GetByProduct(product.ID); err == nil && p != nil {
		price = p.SalePrice
	}

	status := StockHealthy
	switch {
	case total == 0:
		status = StockOut
	case total < product.MinStock:
		status = StockCritical
	}

	return &StockView{
		Product: product,
		Price:   price,
		Total:   total,
		Lots:    lots,
		Status:  status,
	}, nil
}

// LowStock devuelve los productos con stock total por debajo de su mínimo.
func (uc *UseCase) LowStock(ctx context.Context) ([]*StockView, error) {
	var out []*StockView
	const page = 100
	for offset := 0; ; offset += page {
		products, err := uc.productRepo.List(page, offset)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		for _, p := range products {
			lots, err := uc.lotRepo.ListActiveByProduct(p.ID)
			if err != nil {
				return nil, err
			}
			total := fefo.Available(lots)
			if total >= p.MinStock {
				continue
			}
			status := StockCritical
			if total == 0 {
				status = StockOut
			}
			out = append(out, &StockView{Product: p, Total: total, Lots: lots, Status: status})
		}
		if len(products) < page {
			break
		}
	}
	return out, nil
}

// BulkPriceUpdate aplica un porcentaje a los precios de venta. Con marca
// vacía alcanza a todo el catálogo. Devuelve cuántos precios cambió.
func (uc *UseCase) BulkPriceUpdate(ctx context.Context, percent decimal.Decimal, brand string) (int, error) {
	if percent.IsZero() || percent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return 0, domain.ErrInvalidInput
	}
	factor := decimal.NewFromInt(1).Add(percent.Div(decimal.NewFromInt(100)))

	var products []*entity.Product
	var err error
	if brand != "" {
		products, err = uc.productRepo.ListByBrand(brand)
		if err != nil {
			return 0, err
		}
	} else {
		const page = 100
		for offset := 0; ; offset += page {
			batch, err := uc.productRepo.List(page, offset)
			if err != nil {
				return 0, err
			}
			products = append(products, batch...)
			if len(batch) < page {
				break
			}
		}
	}

	updated := 0
	now := time.Now()
	for _, p := range products {
		price, err := uc.priceRepo.GetByProduct(p.ID)
		if err != nil {
			return updated, err
		}
		if price == nil {
			continue
		}
		price.SalePrice = price.SalePrice.Mul(factor).Round(2)
		price.UpdatedAt = now
		if err := uc.priceRepo.Upsert(price); err != nil {
			return updated, err
		}
		updated++
	}

	uc.log.Info().
		Str("porcentaje", percent.String()).
		Str("marca", brand).
		Int("precios_actualizados", updated).
		Msg("actualización masiva de precios")

	return updated, nil
}
