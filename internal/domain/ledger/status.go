package ledger

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// DeriveStatus calcula el estado de un lote (servicio de dominio, función pura).
// Reglas en orden: anulado → VOIDED (terminal); cantidad cero → DEPLETED
// (automático, pisa cualquier estado explícito); si no, el estado explícito
// (IN_STOCK/RESERVED/ON_HOLD), con IN_STOCK por defecto.
func DeriveStatus(currentQuantity int64, voided bool, explicitStatus string) string {
	if voided {
		return entity.StatusVoided
	}
	if currentQuantity == 0 {
		return entity.StatusDepleted
	}
	if entity.IsExplicitStatus(explicitStatus) {
		return explicitStatus
	}
	return entity.StatusInStock
}
