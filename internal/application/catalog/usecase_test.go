package catalog

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

type memState struct {
	products map[string]*entity.Product
	prices   map[string]*entity.Price
	lots     map[string]*entity.Lot
}

func newMemState() *memState {
	return &memState{
		products: map[string]*entity.Product{},
		prices:   map[string]*entity.Price{},
		lots:     map[string]*entity.Lot{},
	}
}

type memProductRepo struct{ s *memState }

func (r *memProductRepo) Create(p *entity.Product) error             { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	for _, p := range r.s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
func (r *memProductRepo) ListByBrand(brand string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Brand == brand {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

type memPriceRepo struct{ s *memState }

func (r *memPriceRepo) GetByProduct(productID string) (*entity.Price, error) {
	return r.s.prices[productID], nil
}
func (r *memPriceRepo) Upsert(p *entity.Price) error { r.s.prices[p.ProductID] = p; return nil }

type memLotRepo struct{ s *memState }

func (r *memLotRepo) Create(l *entity.Lot) error             { r.s.lots[l.ID] = l; return nil }
func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) { return r.s.lots[id], nil }
func (r *memLotRepo) ListActiveByProduct(productID string) ([]entity.Lot, error) {
	var out []entity.Lot
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.Remaining > 0 {
			out = append(out, *l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Expiration.Before(out[j].Expiration) })
	return out, nil
}
func (r *memLotRepo) ListActiveByProductForUpdate(productID string) ([]entity.Lot, error) {
	return r.ListActiveByProduct(productID)
}
func (r *memLotRepo) FindActiveInPosition(productID, positionID string) (*entity.Lot, error) {
	return nil, nil
}
func (r *memLotRepo) UpdateRemaining(id string, remaining int64) error {
	r.s.lots[id].Remaining = remaining
	return nil
}
func (r *memLotRepo) Relocate(id, positionID string) error { return nil }

func newTestUseCase(s *memState) *UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewUseCase(&memProductRepo{s}, &memPriceRepo{s}, &memLotRepo{s}, nil, log)
}

func TestCreate_ProductoConPrecio(t *testing.T) {
	s := newMemState()
	uc := newTestUseCase(s)

	p, err := uc.Create(context.Background(), CreateInput{
		Name: "Vital Can Adulto 15kg", SKU: "VC-AD-15", Brand: "Vital Can",
		MinStock: 10, Price: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	require.NotNil(t, s.prices[p.ID])
	assert.True(t, decimal.NewFromInt(5000).Equal(s.prices[p.ID].SalePrice))
}

func TestCreate_SKUDuplicado(t *testing.T) {
	s := newMemState()
	uc := newTestUseCase(s)

	_, err := uc.Create(context.Background(), CreateInput{Name: "A", SKU: "X-1"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), CreateInput{Name: "B", SKU: "X-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_CambiaDatosYPrecio(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Adulto 15kg", SKU: "VC-AD-15", MinStock: 5}
	s.prices["prod-1"] = &entity.Price{ProductID: "prod-1", SalePrice: decimal.NewFromInt(5000)}
	uc := newTestUseCase(s)

	p, err := uc.Update(context.Background(), "prod-1", UpdateInput{
		Name: "Adulto Mayor 15kg", Brand: "Vital Can", MinStock: 8,
		Price: decimal.NewFromInt(5600),
	})
	require.NoError(t, err)
	assert.Equal(t, "Adulto Mayor 15kg", p.Name)
	assert.Equal(t, "VC-AD-15", p.SKU)
	assert.Equal(t, int64(8), p.MinStock)
	assert.True(t, decimal.NewFromInt(5600).Equal(s.prices["prod-1"].SalePrice))
}

func TestUpdate_Inexistente(t *testing.T) {
	uc := newTestUseCase(newMemState())
	_, err := uc.Update(context.Background(), "nada", UpdateInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsultBySKU_LotesEnOrdenDeVencimiento(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Adulto 15kg", SKU: "VC-AD-15", MinStock: 5}
	s.prices["prod-1"] = &entity.Price{ProductID: "prod-1", SalePrice: decimal.NewFromInt(5000)}
	s.lots["l-tarde"] = &entity.Lot{ID: "l-tarde", ProductID: "prod-1", LotNumber: "L-2", Remaining: 10, Expiration: time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)}
	s.lots["l-pronto"] = &entity.Lot{ID: "l-pronto", ProductID: "prod-1", LotNumber: "L-1", Remaining: 4, Expiration: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	uc := newTestUseCase(s)

	view, err := uc.ConsultBySKU(context.Background(), "VC-AD-15")
	require.NoError(t, err)
	assert.Equal(t, int64(14), view.Total)
	assert.Equal(t, StockHealthy, view.Status)
	require.Len(t, view.Lots, 2)
	assert.Equal(t, "L-1", view.Lots[0].LotNumber)
	assert.Equal(t, "L-2", view.Lots[1].LotNumber)
	assert.True(t, decimal.NewFromInt(5000).Equal(view.Price))
}

func TestConsultBySKU_EstadosDeStock(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1", SKU: "VC-AD-15", MinStock: 5}
	uc := newTestUseCase(s)

	view, err := uc.ConsultBySKU(context.Background(), "VC-AD-15")
	require.NoError(t, err)
	assert.Equal(t, StockOut, view.Status)

	s.lots["l-1"] = &entity.Lot{ID: "l-1", ProductID: "prod-1", Remaining: 3, Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}
	view, err = uc.ConsultBySKU(context.Background(), "VC-AD-15")
	require.NoError(t, err)
	assert.Equal(t, StockCritical, view.Status)
}

func TestConsultBySKU_Inexistente(t *testing.T) {
	uc := newTestUseCase(newMemState())
	_, err := uc.ConsultBySKU(context.Background(), "NADA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_SoloProductosBajoMinimo(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Bajo", SKU: "B", MinStock: 10}
	s.products["prod-2"] = &entity.Product{ID: "prod-2", Name: "Sano", SKU: "S", MinStock: 2}
	s.lots["l-1"] = &entity.Lot{ID: "l-1", ProductID: "prod-1", Remaining: 3, Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}
	s.lots["l-2"] = &entity.Lot{ID: "l-2", ProductID: "prod-2", Remaining: 8, Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}
	uc := newTestUseCase(s)

	low, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "prod-1", low[0].Product.ID)
	assert.Equal(t, StockCritical, low[0].Status)
}

func TestBulkPriceUpdate_PorMarca(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1", Brand: "Vital Can"}
	s.products["prod-2"] = &entity.Product{ID: "prod-2", Brand: "Otra"}
	s.prices["prod-1"] = &entity.Price{ProductID: "prod-1", SalePrice: decimal.NewFromInt(1000)}
	s.prices["prod-2"] = &entity.Price{ProductID: "prod-2", SalePrice: decimal.NewFromInt(1000)}
	uc := newTestUseCase(s)

	updated, err := uc.BulkPriceUpdate(context.Background(), decimal.NewFromInt(10), "Vital Can")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.True(t, decimal.NewFromInt(1100).Equal(s.prices["prod-1"].SalePrice))
	assert.True(t, decimal.NewFromInt(1000).Equal(s.prices["prod-2"].SalePrice))
}

func TestBulkPriceUpdate_TodoElCatalogo(t *testing.T) {
	s := newMemState()
	s.products["prod-1"] = &entity.Product{ID: "prod-1"}
	s.products["prod-2"] = &entity.Product{ID: "prod-2"}
	s.prices["prod-1"] = &entity.Price{ProductID: "prod-1", SalePrice: decimal.NewFromInt(200)}
	s.prices["prod-2"] = &entity.Price{ProductID: "prod-2", SalePrice: decimal.NewFromInt(400)}
	uc := newTestUseCase(s)

	updated, err := uc.BulkPriceUpdate(context.Background(), decimal.NewFromInt(-50), "")
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.True(t, decimal.NewFromInt(100).Equal(s.prices["prod-1"].SalePrice))
	assert.True(t, decimal.NewFromInt(200).Equal(s.prices["prod-2"].SalePrice))
}

func TestBulkPriceUpdate_PorcentajeInvalido(t *testing.T) {
	uc := newTestUseCase(newMemState())
	_, err := uc.BulkPriceUpdate(context.Background(), decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.BulkPriceUpdate(context.Background(), decimal.NewFromInt(-100), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
