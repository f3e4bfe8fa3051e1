package ledger

import "github.com/jhoicas/zonafranca-api/internal/domain/entity"

// Nombres de los eventos de dominio publicados por el motor. Los nombres de
// campo de cada payload son contrato con los consumidores downstream
// (dashboards, WebSocket, monitoreo) y no deben cambiarse.
const (
	EventLotCreated       = "inventory.lot.created"
	EventLotUpdated       = "inventory.lot.updated"
	EventLotVoided        = "inventory.lot.voided"
	EventLotStatusChanged = "inventory.lot.status_changed"
	EventLowStockAlert    = "inventory.low_stock_alert"
)

// lotPayload serializa un lote como mapa snake_case para los payloads de eventos.
func lotPayload(lot *entity.Lot) map[string]any {
	return map[string]any{
		"id":                  lot.ID,
		"part_id":             lot.PartID,
		"customer_id":         lot.CustomerID,
		"storage_location_id": lot.StorageLocationID,
		"status":              lot.Status,
		"original_quantity":   lot.OriginalQuantity,
		"current_quantity":    lot.CurrentQuantity,
		"admission_date":      lot.AdmissionDate,
		"manifest_number":     lot.ManifestNumber,
		"bill_of_lading":      lot.BillOfLading,
		"total_value":         lot.TotalValue,
		"voided":              lot.Voided,
	}
}

func lotCreatedPayload(lot *entity.Lot) map[string]any {
	return map[string]any{
		"lot":            lotPayload(lot),
		"created_by":     lot.CreatedBy,
		"admission_date": lot.AdmissionDate,
	}
}

func lotUpdatedPayload(lotID string, oldQty, newQty int64, reason, userID string) map[string]any {
	return map[string]any{
		"lot_id": lotID,
		"changes": map[string]any{
			"quantity": map[string]any{"old": oldQty, "new": newQty},
		},
		"reason":  reason,
		"user_id": userID,
	}
}

func lotVoidedPayload(lotID, reason, userID string) map[string]any {
	return map[string]any{
		"lot_id":  lotID,
		"reason":  reason,
		"user_id": userID,
	}
}

func lotStatusChangedPayload(lotID, previous, next, reason, userID string) map[string]any {
	return map[string]any{
		"lot_id":          lotID,
		"previous_status": previous,
		"new_status":      next,
		"reason":          reason,
		"user_id":         userID,
	}
}

func lowStockPayload(lot *entity.Lot) map[string]any {
	return map[string]any{
		"lot_id":           lot.ID,
		"current_quantity": lot.CurrentQuantity,
		"part_id":          lot.PartID,
		"customer_id":      lot.CustomerID,
	}
}
