package dto

import (
	"time"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

// AuditLogResponse representación HTTP de una entrada del audit trail.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Reason    string         `json:"reason"`
	Details   map[string]any `json:"details"`
	UserID    string         `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToAuditLogResponse convierte la entidad a su representación HTTP.
func ToAuditLogResponse(e *entity.AuditLogEntry) *AuditLogResponse {
	if e == nil {
		return nil
	}
	return &AuditLogResponse{
		ID:        e.ID,
		Action:    e.Action,
		Reason:    e.Reason,
		Details:   e.Details,
		UserID:    e.UserID,
		CreatedAt: e.CreatedAt,
	}
}
