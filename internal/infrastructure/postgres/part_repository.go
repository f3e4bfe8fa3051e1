package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/zonafranca-api/internal/domain"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste una referencia.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (id, sku, description, country_of_origin, hts_code, unit_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.SKU, part.Description, part.CountryOfOrigin,
		part.HTSCode, part.UnitValue, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// GetByID obtiene una referencia por ID. Devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	query := `
		SELECT id, sku, description, country_of_origin, hts_code, unit_value, created_at, updated_at
		FROM parts WHERE id = $1`
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Description, &p.CountryOfOrigin,
		&p.HTSCode, &p.UnitValue, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// List lista referencias paginadas.
func (r *PartRepo) List(limit, offset int) ([]*entity.Part, error) {
	query := `
		SELECT id, sku, description, country_of_origin, hts_code, unit_value, created_at, updated_at
		FROM parts ORDER BY sku ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.SKU, &p.Description, &p.CountryOfOrigin,
			&p.HTSCode, &p.UnitValue, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Exists verifica la existencia de la referencia (check de admisión).
func (r *PartRepo) Exists(id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM parts WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("part exists: %w", err)
	}
	return exists, nil
}
