package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clinivet-api/internal/domain"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
	"github.com/jhoicas/Clinivet-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, cost_price, sale_price, current_stock, min_stock,
	supplier_id, category, unit, barcode, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description, supplierID, category, unit, barcode *string
	err := row.Scan(
		&p.ID, &p.Name, &description, &p.CostPrice, &p.SalePrice,
		&p.CurrentStock, &p.MinStock, &supplierID, &category, &unit, &barcode,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description != nil {
		p.Description = *description
	}
	if supplierID != nil {
		p.SupplierID = *supplierID
	}
	if category != nil {
		p.Category = *category
	}
	if unit != nil {
		p.Unit = *unit
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, cost_price, sale_price, current_stock, min_stock,
			supplier_id, category, unit, barcode, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullable(p.Description), p.CostPrice, p.SalePrice,
		p.CurrentStock, p.MinStock, nullable(p.SupplierID), nullable(p.Category),
		nullable(p.Unit), nullable(p.Barcode), p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// El ledger lo usa dentro de una transacción para que la verificación de
// no-negatividad y el update del stock vean el mismo valor.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No toca current_stock (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, cost_price = $4, sale_price = $5,
			min_stock = $6, supplier_id = $7, category = $8, unit = $9, barcode = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullable(p.Description), p.CostPrice, p.SalePrice,
		p.MinStock, nullable(p.SupplierID), nullable(p.Category), nullable(p.Unit),
		nullable(p.Barcode), p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock sobreescribe current_stock con un valor absoluto (usado por el ledger).
func (r *ProductRepo) UpdateStock(ctx context.Context, productID string, newStock int) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	_, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = now() WHERE id = $1`,
		productID, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// FindByBarcode obtiene un producto activo por código de barras.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = $1 AND is_active = true`
	p, err := scanProduct(r.q.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// FindLowStock lista los productos activos en o por debajo de su stock mínimo,
// orden ascendente por current_stock.
func (r *ProductRepo) FindLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active = true AND current_stock <= min_stock
		ORDER BY current_stock ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista productos con filtros opcionales y paginación; devuelve también el total.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	where := ""
	args := []any{}
	pos := 1
	appendCond := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, pos)
		args = append(args, val)
		pos++
	}
	if f.Name != "" {
		appendCond("name ILIKE $%d", "%"+f.Name+"%")
	}
	if f.Category != "" {
		appendCond("category = $%d", f.Category)
	}
	if f.SupplierID != "" {
		appendCond("supplier_id = $%d", f.SupplierID)
	}
	if f.IsActive != nil {
		appendCond("is_active = $%d", *f.IsActive)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
