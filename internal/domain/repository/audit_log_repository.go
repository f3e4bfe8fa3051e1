package repository

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para el audit trail
// (append-only, retención permanente).
type AuditLogRepository interface {
	Create(entry *entity.AuditLogEntry) error
	List(limit, offset int) ([]*entity.AuditLogEntry, error)
	ListByLot(lotID string, limit, offset int) ([]*entity.AuditLogEntry, error)
}
