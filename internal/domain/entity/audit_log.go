package entity

import "time"

// Acciones registradas en el audit trail.
const (
	AuditActionLotAdmitted        = "lot.admitted"
	AuditActionQuantityAdjusted   = "lot.quantity_adjusted"
	AuditActionLotVoided          = "lot.voided"
	AuditActionStatusChanged      = "lot.status_changed"
	AuditActionQuantityReconciled = "lot.quantity_reconciled"
)

// AuditLogEntry es una entrada inmutable del audit trail. Retención permanente
// (requisito de cumplimiento aduanero). Details debe contener suficiente contexto
// (lot_id, valores antes/después, actor) para reconstruir el cambio sin
// consultar el libro de transacciones.
type AuditLogEntry struct {
	ID        string
	Action    string
	Reason    string
	Details   map[string]any
	UserID    string
	CreatedAt time.Time
}
