package inventory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalcan/haruwen-wms/internal/application/session"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Fixture en memoria para las operaciones de depósito.
// ─────────────────────────────────────────────────────────────

type memState struct {
	products  map[string]*entity.Product
	positions map[string]*entity.Position
	lots      map[string]*entity.Lot
	movements []*entity.Movement
}

func newMemState() *memState {
	return &memState{
		products:  map[string]*entity.Product{},
		positions: map[string]*entity.Position{},
		lots:      map[string]*entity.Lot{},
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
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error)   { return nil, nil }
func (r *memProductRepo) ListByBrand(brand string) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error                      { return nil }

type memPositionRepo struct{ s *memState }

func (r *memPositionRepo) Create(p *entity.Position) error              { r.s.positions[p.ID] = p; return nil }
func (r *memPositionRepo) GetByID(id string) (*entity.Position, error)  { return r.s.positions[id], nil }
func (r *memPositionRepo) GetForUpdate(id string) (*entity.Position, error) {
	return r.s.positions[id], nil
}
func (r *memPositionRepo) List() ([]*entity.Position, error) { return nil, nil }
func (r *memPositionRepo) ListByProduct(productID string) ([]*entity.Position, error) {
	return nil, nil
}
func (r *memPositionRepo) Update(p *entity.Position) error { r.s.positions[p.ID] = p; return nil }

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
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.PositionID == positionID && l.Remaining > 0 {
			return l, nil
		}
	}
	return nil, nil
}
func (r *memLotRepo) UpdateRemaining(id string, remaining int64) error {
	r.s.lots[id].Remaining = remaining
	return nil
}
func (r *memLotRepo) Relocate(id, positionID string) error {
	r.s.lots[id].PositionID = positionID
	return nil
}

type memMovementRepo struct{ s *memState }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *memMovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	return r.s.movements, nil
}
func (r *memMovementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	return nil, nil
}

type memTxRunner struct{ s *memState }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	repository.PositionRepository,
	repository.LotRepository,
	repository.MovementRepository,
) error) error {
	return fn(&memPositionRepo{t.s}, &memLotRepo{t.s}, &memMovementRepo{t.s})
}

func newTestUseCase(s *memState) *UseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewUseCase(&memTxRunner{s}, &memProductRepo{s}, &memPositionRepo{s}, &memLotRepo{s}, log)
}

var sess = session.Session{UserID: "u-1", Name: "Damián", Role: entity.RoleDeposito}

func seed(s *memState) {
	s.products["prod-1"] = &entity.Product{ID: "prod-1", Name: "Vital Can Cachorro 3kg", SKU: "VC-CA-03"}
	s.positions["A-1"] = &entity.Position{ID: "A-1", State: entity.PositionEmpty}
	s.positions["B-4"] = &entity.Position{ID: "B-4", State: entity.PositionEmpty}
}

// ─────────────────────────────────────────────────────────────
// Recepción
// ─────────────────────────────────────────────────────────────

func TestReceive_CreaLoteYAsientaEntrada(t *testing.T) {
	s := newMemState()
	seed(s)
	uc := newTestUseCase(s)

	lot, err := uc.Receive(context.Background(), sess, ReceiveInput{
		ProductID:  "prod-1",
		PositionID: "A-1",
		LotNumber:  "L-2410",
		Expiration: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		Quantity:   12,
	})
	require.NoError(t, err)
	require.NotNil(t, lot)

	pos := s.positions["A-1"]
	assert.Equal(t, int64(12), pos.Quantity)
	assert.Equal(t, entity.PositionOccupied, pos.State)
	assert.Equal(t, "prod-1", pos.ProductID)

	assert.Equal(t, int64(12), s.lots[lot.ID].Remaining)
	assert.Equal(t, "A-1", s.lots[lot.ID].PositionID)

	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementEntry, m.Type)
	assert.Equal(t, "PROVEEDOR", m.Origin)
	assert.Equal(t, "A-1", m.Dest)
	assert.Equal(t, int64(12), m.Quantity)
	assert.Equal(t, "Damián", m.User)
	assert.Equal(t, "Lote L-2410", m.Reference)
}

func TestReceive_RechazaPosicionConOtroProducto(t *testing.T) {
	s := newMemState()
	seed(s)
	s.products["prod-2"] = &entity.Product{ID: "prod-2", Name: "Otro", SKU: "X"}
	s.positions["A-1"].Apply(5)
	s.positions["A-1"].ProductID = "prod-2"
	uc := newTestUseCase(s)

	_, err := uc.Receive(context.Background(), sess, ReceiveInput{
		ProductID:  "prod-1",
		PositionID: "A-1",
		LotNumber:  "L-1",
		Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:   3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.movements)
}

func TestReceive_ValidaEntrada(t *testing.T) {
	s := newMemState()
	seed(s)
	uc := newTestUseCase(s)

	_, err := uc.Receive(context.Background(), sess, ReceiveInput{
		ProductID: "prod-1", PositionID: "A-1", LotNumber: "L-1",
		Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:   0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────
// Traspaso entre racks
// ─────────────────────────────────────────────────────────────

func TestTransfer_MueveStockYReubicaLote(t *testing.T) {
	s := newMemState()
	seed(s)
	s.positions["A-1"].ProductID = "prod-1"
	s.positions["A-1"].Apply(10)
	s.lots["lote-1"] = &entity.Lot{ID: "lote-1", ProductID: "prod-1", LotNumber: "L-1", Remaining: 10, PositionID: "A-1", Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}
	uc := newTestUseCase(s)

	err := uc.Transfer(context.Background(), sess, TransferInput{
		ProductID: "prod-1", FromPositionID: "A-1", ToPositionID: "B-4", Quantity: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), s.positions["A-1"].Quantity)
	assert.Equal(t, int64(4), s.positions["B-4"].Quantity)
	assert.Equal(t, entity.PositionOccupied, s.positions["B-4"].State)

	// El lote entero queda referenciado en el destino.
	assert.Equal(t, "B-4", s.lots["lote-1"].PositionID)

	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementTransfer, m.Type)
	assert.Equal(t, "A-1", m.Origin)
	assert.Equal(t, "B-4", m.Dest)
	assert.Equal(t, "Traspaso entre racks", m.Reference)
}

func TestTransfer_StockInsuficiente(t *testing.T) {
	s := newMemState()
	seed(s)
	s.positions["A-1"].ProductID = "prod-1"
	s.positions["A-1"].Apply(2)
	uc := newTestUseCase(s)

	err := uc.Transfer(context.Background(), sess, TransferInput{
		ProductID: "prod-1", FromPositionID: "A-1", ToPositionID: "B-4", Quantity: 5,
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Required)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(2), s.positions["A-1"].Quantity)
}

func TestTransfer_MismaPosicion(t *testing.T) {
	s := newMemState()
	seed(s)
	uc := newTestUseCase(s)

	err := uc.Transfer(context.Background(), sess, TransferInput{
		ProductID: "prod-1", FromPositionID: "A-1", ToPositionID: "A-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────
// Ajuste de inventario
// ─────────────────────────────────────────────────────────────

func TestAdjust_CorrigeAValorContado(t *testing.T) {
	s := newMemState()
	seed(s)
	s.positions["A-1"].ProductID = "prod-1"
	s.positions["A-1"].Apply(10)
	s.lots["lote-1"] = &entity.Lot{ID: "lote-1", ProductID: "prod-1", Remaining: 10, PositionID: "A-1", Expiration: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}
	uc := newTestUseCase(s)

	err := uc.Adjust(context.Background(), sess, AdjustInput{
		PositionID:   "A-1",
		Quantity:     7,
		Observations: "Bolsas rotas en conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), s.positions["A-1"].Quantity)
	assert.Equal(t, int64(7), s.lots["lote-1"].Remaining)

	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementAdjustment, m.Type)
	assert.Equal(t, int64(3), m.Quantity)
	assert.Equal(t, "Bolsas rotas en conteo físico", m.Reference)
}

func TestAdjust_ACeroVaciaLaPosicion(t *testing.T) {
	s := newMemState()
	seed(s)
	s.positions["A-1"].ProductID = "prod-1"
	s.positions["A-1"].Apply(4)
	uc := newTestUseCase(s)

	err := uc.Adjust(context.Background(), sess, AdjustInput{
		PositionID: "A-1", Quantity: 0, Observations: "Mermas",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PositionEmpty, s.positions["A-1"].State)
	assert.Equal(t, int64(0), s.positions["A-1"].Quantity)
}

func TestAdjust_SinObservacionesNoSePermite(t *testing.T) {
	s := newMemState()
	seed(s)
	uc := newTestUseCase(s)

	err := uc.Adjust(context.Background(), sess, AdjustInput{PositionID: "A-1", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_SinDiferenciaEsInvalido(t *testing.T) {
	s := newMemState()
	seed(s)
	s.positions["A-1"].Apply(5)
	uc := newTestUseCase(s)

	err := uc.Adjust(context.Background(), sess, AdjustInput{
		PositionID: "A-1", Quantity: 5, Observations: "Conteo igual",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.movements)
}
