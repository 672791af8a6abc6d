package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalcan/haruwen-wms/internal/application/session"
	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Fixture en memoria: clientes, facturas y pagos.
// ─────────────────────────────────────────────────────────────

type memState struct {
	customers map[string]*entity.Customer
	invoices  []*entity.Invoice
	payments  map[string]*entity.Payment
}

func newMemState() *memState {
	return &memState{
		customers: map[string]*entity.Customer{},
		payments:  map[string]*entity.Payment{},
	}
}

type memCustomerRepo struct{ s *memState }

func (r *memCustomerRepo) Create(c *entity.Customer) error             { r.s.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) { return r.s.customers[id], nil }
func (r *memCustomerRepo) GetByCUIT(cuit string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.CUIT == cuit {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) ListIDs() ([]string, error) {
	var ids []string
	for id := range r.s.customers {
		ids = append(ids, id)
	}
	return ids, nil
}
func (r *memCustomerRepo) UpdateBalance(id string, balance decimal.Decimal, state string) error {
	c := r.s.customers[id]
	c.Balance = balance
	c.State = state
	return nil
}

type memInvoiceRepo struct{ s *memState }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error { r.s.invoices = append(r.s.invoices, inv); return nil }
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	for _, inv := range r.s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvoiceRepo) GetByOrderID(orderID string) (*entity.Invoice, error) { return nil, nil }
func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error)    { return r.s.invoices, nil }
func (r *memInvoiceRepo) ListByCustomerName(name string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CustomerName == name {
			out = append(out, inv)
		}
	}
	return out, nil
}

type memPaymentRepo struct{ s *memState }

func (r *memPaymentRepo) Create(p *entity.Payment) error             { r.s.payments[p.ID] = p; return nil }
func (r *memPaymentRepo) GetByID(id string) (*entity.Payment, error) { return r.s.payments[id], nil }
func (r *memPaymentRepo) Approve(id string, approvedAt time.Time) (bool, error) {
	p, ok := r.s.payments[id]
	if !ok || p.State != entity.PaymentPending {
		return false, nil
	}
	p.State = entity.PaymentApproved
	p.ApprovedAt = &approvedAt
	return true, nil
}
func (r *memPaymentRepo) ListPending(limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.State == entity.PaymentPending {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memPaymentRepo) ListApprovedByCustomer(customerID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.CustomerID == customerID && p.State == entity.PaymentApproved {
			out = append(out, p)
		}
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newBalanceUC(s *memState) *BalanceUseCase {
	return NewBalanceUseCase(&memCustomerRepo{s}, &memInvoiceRepo{s}, &memPaymentRepo{s}, testLogger())
}

func seedCustomer(s *memState) *entity.Customer {
	c := &entity.Customer{
		ID: "c-1", Name: "Forrajería El Galpón", CUIT: "30-11222333-9",
		State: entity.CustomerActive, Balance: decimal.Zero,
	}
	s.customers["c-1"] = c
	return c
}

func invoiceFor(name string, total int64) *entity.Invoice {
	return &entity.Invoice{ID: "f-" + name, CustomerName: name, GrandTotal: decimal.NewFromInt(total)}
}

// ─────────────────────────────────────────────────────────────
// Recalculo de saldo
// ─────────────────────────────────────────────────────────────

func TestRecalculate_SaldoEsFacturasMenosPagos(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices,
		&entity.Invoice{ID: "f-1", CustomerName: "Forrajería El Galpón", GrandTotal: decimal.NewFromInt(1200)},
		&entity.Invoice{ID: "f-2", CustomerName: "Forrajería El Galpón", GrandTotal: decimal.NewFromInt(300)},
		&entity.Invoice{ID: "f-3", CustomerName: "Otro Cliente", GrandTotal: decimal.NewFromInt(9999)},
	)
	now := time.Now()
	s.payments["p-1"] = &entity.Payment{ID: "p-1", CustomerID: "c-1", Amount: decimal.NewFromInt(1100), State: entity.PaymentApproved, ApprovedAt: &now}
	s.payments["p-2"] = &entity.Payment{ID: "p-2", CustomerID: "c-1", Amount: decimal.NewFromInt(500), State: entity.PaymentPending}

	uc := newBalanceUC(s)
	c, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)

	// 1200 + 300 − 1100 aprobado; el pendiente no cuenta.
	assert.True(t, decimal.NewFromInt(400).Equal(c.Balance))
	assert.Equal(t, entity.CustomerActive, c.State)
}

func TestRecalculate_SuperaLimitePasaADeudor(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 501))

	uc := newBalanceUC(s)
	c, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerDebtor, c.State)
}

func TestRecalculate_EnElLimiteSigueActivo(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 500))

	uc := newBalanceUC(s)
	c, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerActive, c.State)
}

func TestRecalculate_EsIdempotente(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 800))

	uc := newBalanceUC(s)
	c1, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)
	c2, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)

	assert.True(t, c1.Balance.Equal(c2.Balance))
	assert.Equal(t, c1.State, c2.State)
	assert.True(t, decimal.NewFromInt(800).Equal(c2.Balance))
}

func TestRecalculate_DeudorVuelveAActivoTrasPago(t *testing.T) {
	s := newMemState()
	c := seedCustomer(s)
	c.State = entity.CustomerDebtor
	c.Balance = decimal.NewFromInt(800)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 800))
	now := time.Now()
	s.payments["p-1"] = &entity.Payment{ID: "p-1", CustomerID: "c-1", Amount: decimal.NewFromInt(600), State: entity.PaymentApproved, ApprovedAt: &now}

	uc := newBalanceUC(s)
	got, err := uc.Recalculate(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerActive, got.State)
	assert.True(t, decimal.NewFromInt(200).Equal(got.Balance))
}

func TestRecalculateByCUIT_SinClienteRegistradoNoFalla(t *testing.T) {
	uc := newBalanceUC(newMemState())
	assert.NoError(t, uc.RecalculateByCUIT(context.Background(), "20-00000000-0"))
}

func TestRecalculate_ClienteInexistente(t *testing.T) {
	uc := newBalanceUC(newMemState())
	_, err := uc.Recalculate(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuditAll_RecorreTodosLosClientes(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.customers["c-2"] = &entity.Customer{ID: "c-2", Name: "Pet Shop Luna", CUIT: "27-99888777-1", State: entity.CustomerActive}
	s.invoices = append(s.invoices, invoiceFor("Pet Shop Luna", 700))

	uc := newBalanceUC(s)
	done, err := uc.AuditAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, done)
	assert.Equal(t, entity.CustomerDebtor, s.customers["c-2"].State)
	assert.Equal(t, entity.CustomerActive, s.customers["c-1"].State)
}

// ─────────────────────────────────────────────────────────────
// Pagos
// ─────────────────────────────────────────────────────────────

var sess = session.Session{UserID: "u-1", Name: "Romina", Role: entity.RoleVentas}

func TestPayment_AprobarImpactaElSaldo(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 900))
	balances := newBalanceUC(s)
	uc := NewPaymentUseCase(&memPaymentRepo{s}, &memCustomerRepo{s}, balances, testLogger())

	p, err := uc.Register(context.Background(), sess, RegisterInput{
		CustomerID: "c-1", Amount: decimal.NewFromInt(600), Method: "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, p.State)
	assert.Equal(t, "Romina", p.LoadedBy)

	c, err := uc.Approve(context.Background(), sess, p.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(c.Balance))
	assert.Equal(t, entity.CustomerActive, c.State)
}

func TestPayment_AprobarDosVecesNoDescuentaDoble(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	s.invoices = append(s.invoices, invoiceFor("Forrajería El Galpón", 900))
	balances := newBalanceUC(s)
	uc := NewPaymentUseCase(&memPaymentRepo{s}, &memCustomerRepo{s}, balances, testLogger())

	p, err := uc.Register(context.Background(), sess, RegisterInput{
		CustomerID: "c-1", Amount: decimal.NewFromInt(400), Method: "efectivo",
	})
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), sess, p.ID)
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), sess, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, decimal.NewFromInt(500).Equal(s.customers["c-1"].Balance))
}

func TestPayment_MontoInvalido(t *testing.T) {
	s := newMemState()
	seedCustomer(s)
	uc := NewPaymentUseCase(&memPaymentRepo{s}, &memCustomerRepo{s}, newBalanceUC(s), testLogger())

	_, err := uc.Register(context.Background(), sess, RegisterInput{
		CustomerID: "c-1", Amount: decimal.Zero, Method: "efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
