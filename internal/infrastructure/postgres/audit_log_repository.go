package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL (usable con
// pool o tx). La tabla es append-only con retención permanente.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada del audit trail. Details va como jsonb.
func (r *AuditLogRepo) Create(entry *entity.AuditLogEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, action, reason, details, user_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`
	_, err = r.q.Exec(context.Background(), query,
		entry.ID, entry.Action, entry.Reason, details, entry.UserID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List lista entradas del audit trail, más recientes primero.
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, action, reason, details, user_id, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryEntries(query, limit, offset)
}

// ListByLot lista entradas cuyo details referencia al lote.
func (r *AuditLogRepo) ListByLot(lotID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, action, reason, details, user_id, created_at
		FROM audit_logs WHERE details->>'lot_id' = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryEntries(query, lotID, limit, offset)
}

func (r *AuditLogRepo) queryEntries(query string, args ...any) ([]*entity.AuditLogEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var e entity.AuditLogEntry
		var details []byte
		var userID *string
		if err := rows.Scan(&e.ID, &e.Action, &e.Reason, &details, &userID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal audit details: %w", err)
			}
		}
		if userID != nil {
			e.UserID = *userID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
