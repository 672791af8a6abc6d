package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vitalcan/haruwen-wms/internal/domain"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
// Solo inserta y lee: la tabla facturas no admite UPDATE ni DELETE.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, pedido_id, cliente_nombre, COALESCE(cliente_cuit, ''), total_neto, iva, total_final,
		emitida_por, cae, cae_vto, nro_comprobante, punto_venta, created_at`

// Create persiste una factura emitida. El índice único sobre pedido_id
// garantiza una sola factura por pedido.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO facturas (id, pedido_id, cliente_nombre, cliente_cuit, total_neto, iva, total_final,
			emitida_por, cae, cae_vto, nro_comprobante, punto_venta, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.OrderID, invoice.CustomerName, invoice.CustomerCUIT,
		invoice.NetTotal, invoice.Tax, invoice.GrandTotal,
		invoice.IssuedBy, invoice.CAE, invoice.CAEDue, invoice.Number, invoice.PointOfSale, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.getWhere("id = $1", id)
}

// GetByOrderID obtiene la factura emitida para un pedido.
func (r *InvoiceRepo) GetByOrderID(orderID string) (*entity.Invoice, error) {
	return r.getWhere("pedido_id = $1", orderID)
}

func (r *InvoiceRepo) getWhere(cond string, arg any) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM facturas WHERE ` + cond
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&inv.ID, &inv.OrderID, &inv.CustomerName, &inv.CustomerCUIT,
		&inv.NetTotal, &inv.Tax, &inv.GrandTotal,
		&inv.IssuedBy, &inv.CAE, &inv.CAEDue, &inv.Number, &inv.PointOfSale, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return &inv, nil
}

// List lista facturas con paginación, las más recientes primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM facturas ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// ListByCustomerName devuelve las facturas a nombre de un cliente. La tabla
// guarda nombre y CUIT, no un FK al cliente, igual que el esquema legado.
func (r *InvoiceRepo) ListByCustomerName(name string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM facturas WHERE cliente_nombre = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, name)
	if err != nil {
		return nil, fmt.Errorf("list facturas por cliente: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func scanInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.OrderID, &inv.CustomerName, &inv.CustomerCUIT,
			&inv.NetTotal, &inv.Tax, &inv.GrandTotal,
			&inv.IssuedBy, &inv.CAE, &inv.CAEDue, &inv.Number, &inv.PointOfSale, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
