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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste una fila del ledger.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, direction, quantity, unit_cost, unit_price,
			reason, related_to, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Direction, m.Quantity, m.UnitCost, m.UnitPrice,
		nullable(m.Reason), m.RelatedTo, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reason *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Direction, &m.Quantity,
		&m.UnitCost, &m.UnitPrice, &reason, &m.RelatedTo, &m.UserID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		m.Reason = *reason
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, type, direction, quantity, unit_cost, unit_price, reason, related_to, user_id, created_at
		FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Delete elimina la fila del ledger. La reversión del stock la coordina el caso de uso
// dentro de la misma transacción.
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// filterClause construye el WHERE dinámico compartido por List y ListForSummary.
// alias es el prefijo de la tabla de movimientos en la query ("m." o vacío).
func filterClause(alias string, f repository.MovementFilter) (string, []any) {
	where := ""
	args := []any{}
	appendCond := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args)+1)
		args = append(args, val)
	}
	if f.ProductID != "" {
		appendCond(alias+"product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		appendCond(alias+"type = $%d", f.Type)
	}
	if f.UserID != "" {
		appendCond(alias+"user_id = $%d", f.UserID)
	}
	if f.DateFrom != nil {
		appendCond(alias+"created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		appendCond(alias+"created_at <= $%d", *f.DateTo)
	}
	if f.Reason != "" {
		appendCond(alias+"reason ILIKE $%d", "%"+f.Reason+"%")
	}
	return where, args
}

// List devuelve una página de movimientos con nombres de producto y usuario, más el total.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovementWithDetails, int, error) {
	where, args := filterClause("m.", f)

	var total int
	countQuery := `SELECT count(*) FROM stock_movements m` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.product_id, m.type, m.direction, m.quantity, m.unit_cost, m.unit_price,
			m.reason, m.related_to, m.user_id, m.created_at,
			p.name, p.unit, u.name
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id` + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovementWithDetails
	for rows.Next() {
		var d entity.StockMovementWithDetails
		var reason, unit, userName *string
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.Type, &d.Direction, &d.Quantity,
			&d.UnitCost, &d.UnitPrice, &reason, &d.RelatedTo, &d.UserID, &d.CreatedAt,
			&d.ProductName, &unit, &userName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			d.Reason = *reason
		}
		if unit != nil {
			d.ProductUnit = *unit
		}
		if userName != nil {
			d.UserName = *userName
		}
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// ListForSummary devuelve todas las filas del filtro sin paginar (solo lectura, para la agregación).
func (r *StockMovementRepo) ListForSummary(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	where, args := filterClause("", f)
	query := `
		SELECT id, product_id, type, direction, quantity, unit_cost, unit_price, reason, related_to, user_id, created_at
		FROM stock_movements` + where + ` ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements for summary: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
