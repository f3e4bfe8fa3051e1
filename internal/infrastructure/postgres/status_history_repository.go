package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

var _ repository.StatusHistoryRepository = (*StatusHistoryRepo)(nil)

// StatusHistoryRepo implementación de StatusHistoryRepository sobre PostgreSQL.
type StatusHistoryRepo struct {
	q Querier
}

// NewStatusHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatusHistoryRepository(q Querier) *StatusHistoryRepo {
	return &StatusHistoryRepo{q: q}
}

// Create persiste una transición de estado.
func (r *StatusHistoryRepo) Create(h *entity.StatusHistory) error {
	query := `
		INSERT INTO status_history (id, lot_id, previous_status, new_status, change_reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.LotID, h.PreviousStatus, h.NewStatus, h.ChangeReason, h.CreatedAt, h.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create status history: %w", err)
	}
	return nil
}

// ListByLot lista las transiciones de un lote, más recientes primero.
func (r *StatusHistoryRepo) ListByLot(lotID string, limit, offset int) ([]*entity.StatusHistory, error) {
	query := `
		SELECT id, lot_id, previous_status, new_status, change_reason, created_at, created_by
		FROM status_history WHERE lot_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, lotID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StatusHistory
	for rows.Next() {
		var h entity.StatusHistory
		var createdBy *string
		if err := rows.Scan(&h.ID, &h.LotID, &h.PreviousStatus, &h.NewStatus,
			&h.ChangeReason, &h.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		if createdBy != nil {
			h.CreatedBy = *createdBy
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
