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

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, email, phone, cpf, address, city, state, zip_code, notes, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var address, city, state, zipCode, notes *string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CPF,
		&address, &city, &state, &zipCode, &notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if address != nil {
		c.Address = *address
	}
	if city != nil {
		c.City = *city
	}
	if state != nil {
		c.State = *state
	}
	if zipCode != nil {
		c.ZipCode = *zipCode
	}
	if notes != nil {
		c.Notes = *notes
	}
	return &c, nil
}

// Create persiste un nuevo cliente. CPF es único.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, cpf, address, city, state, zip_code, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.CPF,
		nullable(c.Address), nullable(c.City), nullable(c.State), nullable(c.ZipCode), nullable(c.Notes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// FindByCPF obtiene un cliente por CPF.
func (r *ClientRepo) FindByCPF(ctx context.Context, cpf string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE cpf = $1`, cpf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by cpf: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente existente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, email = $3, phone = $4, cpf = $5, address = $6,
			city = $7, state = $8, zip_code = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.CPF,
		nullable(c.Address), nullable(c.City), nullable(c.State), nullable(c.ZipCode), nullable(c.Notes),
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List lista clientes, con búsqueda opcional por nombre; devuelve también el total.
func (r *ClientRepo) List(ctx context.Context, name string, limit, offset int) ([]*entity.Client, int, error) {
	where := ""
	args := []any{}
	if name != "" {
		where = " WHERE name ILIKE $1"
		args = append(args, "%"+name+"%")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
