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

var _ repository.PetRepository = (*PetRepo)(nil)

const petColumns = `id, client_id, name, species, breed, color, birth_date, weight, microchip, notes, created_at, updated_at`

// PetRepo implementación del puerto PetRepository sobre PostgreSQL.
type PetRepo struct {
	q Querier
}

// NewPetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPetRepository(q Querier) *PetRepo {
	return &PetRepo{q: q}
}

func scanPet(row pgx.Row) (*entity.Pet, error) {
	var p entity.Pet
	var breed, color, microchip, notes *string
	err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Species,
		&breed, &color, &p.BirthDate, &p.Weight, &microchip, &notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if breed != nil {
		p.Breed = *breed
	}
	if color != nil {
		p.Color = *color
	}
	if microchip != nil {
		p.Microchip = *microchip
	}
	if notes != nil {
		p.Notes = *notes
	}
	return &p, nil
}

// Create persiste una nueva mascota.
func (r *PetRepo) Create(ctx context.Context, p *entity.Pet) error {
	query := `
		INSERT INTO pets (id, client_id, name, species, breed, color, birth_date, weight, microchip, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ClientID, p.Name, p.Species,
		nullable(p.Breed), nullable(p.Color), p.BirthDate, p.Weight,
		nullable(p.Microchip), nullable(p.Notes), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// GetByID obtiene una mascota por ID.
func (r *PetRepo) GetByID(ctx context.Context, id string) (*entity.Pet, error) {
	p, err := scanPet(r.q.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

// Update actualiza una mascota existente.
func (r *PetRepo) Update(ctx context.Context, p *entity.Pet) error {
	query := `
		UPDATE pets SET name = $2, species = $3, breed = $4, color = $5, birth_date = $6,
			weight = $7, microchip = $8, notes = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Species, nullable(p.Breed), nullable(p.Color), p.BirthDate,
		p.Weight, nullable(p.Microchip), nullable(p.Notes), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return nil
}

// ListByClient lista las mascotas de un cliente; devuelve también el total.
func (r *PetRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Pet, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM pets WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pets: %w", err)
	}
	query := `SELECT ` + petColumns + ` FROM pets WHERE client_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pets by client: %w", err)
	}
	defer rows.Close()
	return collectPets(rows, total)
}

// List lista todas las mascotas; devuelve también el total.
func (r *PetRepo) List(ctx context.Context, limit, offset int) ([]*entity.Pet, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM pets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pets: %w", err)
	}
	query := `SELECT ` + petColumns + ` FROM pets ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()
	return collectPets(rows, total)
}

func collectPets(rows pgx.Rows, total int) ([]*entity.Pet, int, error) {
	var list []*entity.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pet: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina una mascota por ID.
func (r *PetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
