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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo del catálogo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (id, nombre, sku, marca, stock_minimo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.Brand, product.MinStock, product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getWhere("id = $1", id)
}

// GetBySKU obtiene un producto por su código.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getWhere("sku = $1", sku)
}

func (r *ProductRepo) getWhere(cond string, arg any) (*entity.Product, error) {
	query := `
		SELECT id, nombre, sku, marca, stock_minimo, created_at
		FROM productos WHERE ` + cond
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Name, &p.SKU, &p.Brand, &p.MinStock, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, nombre, sku, marca, stock_minimo, created_at
		FROM productos ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByBrand lista los productos de una marca.
func (r *ProductRepo) ListByBrand(brand string) ([]*entity.Product, error) {
	query := `
		SELECT id, nombre, sku, marca, stock_minimo, created_at
		FROM productos WHERE marca = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, brand)
	if err != nil {
		return nil, fmt.Errorf("list productos por marca: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Brand, &p.MinStock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza los datos maestros de un producto. El stock no se toca
// acá: siempre entra y sale vía movimientos.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, marca = $3, stock_minimo = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Brand, product.MinStock,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación del puerto PriceRepository sobre PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de persistencia para precios.
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// GetByProduct obtiene el precio de venta vigente de un producto.
func (r *PriceRepo) GetByProduct(productID string) (*entity.Price, error) {
	query := `SELECT producto_id, precio_venta, updated_at FROM precios WHERE producto_id = $1`
	var p entity.Price
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&p.ProductID, &p.SalePrice, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get precio: %w", err)
	}
	return &p, nil
}

// Upsert crea o reemplaza el precio de venta de un producto.
func (r *PriceRepo) Upsert(price *entity.Price) error {
	query := `
		INSERT INTO precios (producto_id, precio_venta, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (producto_id) DO UPDATE SET precio_venta = $2, updated_at = $3`
	_, err := r.q.Exec(context.Background(), query, price.ProductID, price.SalePrice, price.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert precio: %w", err)
	}
	return nil
}
