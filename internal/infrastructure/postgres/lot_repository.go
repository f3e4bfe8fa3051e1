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

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, part_id, customer_id, storage_location_id, status,
	original_quantity, current_quantity, admission_date, manifest_number,
	bill_of_lading, total_value, voided, created_at, updated_at, created_by, updated_by`

// Create persiste un lote nuevo.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.PartID, lot.CustomerID, lot.StorageLocationID, lot.Status,
		lot.OriginalQuantity, lot.CurrentQuantity, lot.AdmissionDate, lot.ManifestNumber,
		lot.BillOfLading, lot.TotalValue, lot.Voided, lot.CreatedAt, lot.UpdatedAt,
		lot.CreatedBy, lot.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve (nil, nil) si no existe.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// List lista lotes con filtros opcionales, más recientes primero.
func (r *LotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.CustomerID != "" {
		query += fmt.Sprintf(" AND customer_id = $%d", pos)
		args = append(args, filter.CustomerID)
		pos++
	}
	if filter.PartID != "" {
		query += fmt.Sprintf(" AND part_id = $%d", pos)
		args = append(args, filter.PartID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY admission_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// UpdateQuantityCAS escribe cantidad/estado/voided con compare-and-swap sobre la
// cantidad previa: 0 filas afectadas significa que otro caller ganó la carrera y
// se devuelve domain.ErrConcurrentModification (sin escrituras).
func (r *LotRepo) UpdateQuantityCAS(lot *entity.Lot, expectedOld int64) error {
	query := `
		UPDATE lots
		SET current_quantity = $1, status = $2, voided = $3, updated_at = $4, updated_by = $5
		WHERE id = $6 AND current_quantity = $7`
	tag, err := r.q.Exec(context.Background(), query,
		lot.CurrentQuantity, lot.Status, lot.Voided, lot.UpdatedAt, lot.UpdatedBy,
		lot.ID, expectedOld,
	)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// UpdateStatus fija el estado explícito del lote (sin efecto sobre cantidades).
func (r *LotRepo) UpdateStatus(id, status, updatedBy string) error {
	query := `UPDATE lots SET status = $1, updated_at = now(), updated_by = $2 WHERE id = $3`
	tag, err := r.q.Exec(context.Background(), query, status, updatedBy, id)
	if err != nil {
		return fmt.Errorf("update lot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	var locationID, createdBy, updatedBy *string
	err := row.Scan(
		&l.ID, &l.PartID, &l.CustomerID, &locationID, &l.Status,
		&l.OriginalQuantity, &l.CurrentQuantity, &l.AdmissionDate, &l.ManifestNumber,
		&l.BillOfLading, &l.TotalValue, &l.Voided, &l.CreatedAt, &l.UpdatedAt,
		&createdBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}
	if locationID != nil {
		l.StorageLocationID = *locationID
	}
	if createdBy != nil {
		l.CreatedBy = *createdBy
	}
	if updatedBy != nil {
		l.UpdatedBy = *updatedBy
	}
	return &l, nil
}
