package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

// AdmitLotRequest body para POST /api/lots.
type AdmitLotRequest struct {
	PartID            string          `json:"part_id"`
	CustomerID        string          `json:"customer_id"`
	StorageLocationID string          `json:"storage_location_id,omitempty"`
	Quantity          int64           `json:"quantity"`
	SourceDocument    string          `json:"source_document,omitempty"`
	ManifestNumber    string          `json:"manifest_number,omitempty"`
	BillOfLading      string          `json:"bill_of_lading,omitempty"`
	TotalValue        decimal.Decimal `json:"total_value,omitempty"`
	AdmissionDate     *time.Time      `json:"admission_date,omitempty"`
}

// AdjustQuantityRequest body para POST /api/lots/:id/adjust.
// ExpectedOldQuantity es el guard opcional de concurrencia optimista.
type AdjustQuantityRequest struct {
	NewQuantity         int64  `json:"new_quantity"`
	Reason              string `json:"reason"`
	ExpectedOldQuantity *int64 `json:"expected_old_quantity,omitempty"`
}

// VoidLotRequest body para POST /api/lots/:id/void.
type VoidLotRequest struct {
	Reason string `json:"reason"`
}

// ChangeStatusRequest body para POST /api/lots/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// LotResponse representación HTTP de un lote.
type LotResponse struct {
	ID                string          `json:"id"`
	PartID            string          `json:"part_id"`
	CustomerID        string          `json:"customer_id"`
	StorageLocationID string          `json:"storage_location_id,omitempty"`
	Status            string          `json:"status"`
	OriginalQuantity  int64           `json:"original_quantity"`
	CurrentQuantity   int64           `json:"current_quantity"`
	AdmissionDate     time.Time       `json:"admission_date"`
	ManifestNumber    string          `json:"manifest_number,omitempty"`
	BillOfLading      string          `json:"bill_of_lading,omitempty"`
	TotalValue        decimal.Decimal `json:"total_value"`
	Voided            bool            `json:"voided"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	CreatedBy         string          `json:"created_by,omitempty"`
	UpdatedBy         string          `json:"updated_by,omitempty"`
}

// ToLotResponse convierte la entidad a su representación HTTP.
func ToLotResponse(l *entity.Lot) *LotResponse {
	if l == nil {
		return nil
	}
	return &LotResponse{
		ID:                l.ID,
		PartID:            l.PartID,
		CustomerID:        l.CustomerID,
		StorageLocationID: l.StorageLocationID,
		Status:            l.Status,
		OriginalQuantity:  l.OriginalQuantity,
		CurrentQuantity:   l.CurrentQuantity,
		AdmissionDate:     l.AdmissionDate,
		ManifestNumber:    l.ManifestNumber,
		BillOfLading:      l.BillOfLading,
		TotalValue:        l.TotalValue,
		Voided:            l.Voided,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
		CreatedBy:         l.CreatedBy,
		UpdatedBy:         l.UpdatedBy,
	}
}

// TransactionResponse representación HTTP de una transacción del libro mayor.
type TransactionResponse struct {
	ID             string    `json:"id"`
	LotID          string    `json:"lot_id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	SourceDocument string    `json:"source_document"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// ToTransactionResponse convierte la entidad a su representación HTTP.
func ToTransactionResponse(t *entity.LotTransaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:             t.ID,
		LotID:          t.LotID,
		Type:           t.Type,
		Quantity:       t.Quantity,
		SourceDocument: t.SourceDocument,
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
	}
}

// StatusHistoryResponse representación HTTP de una transición de estado.
type StatusHistoryResponse struct {
	ID             string    `json:"id"`
	LotID          string    `json:"lot_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangeReason   string    `json:"change_reason"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// ToStatusHistoryResponse convierte la entidad a su representación HTTP.
func ToStatusHistoryResponse(s *entity.StatusHistory) *StatusHistoryResponse {
	if s == nil {
		return nil
	}
	return &StatusHistoryResponse{
		ID:             s.ID,
		LotID:          s.LotID,
		PreviousStatus: s.PreviousStatus,
		NewStatus:      s.NewStatus,
		ChangeReason:   s.ChangeReason,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
	}
}

// ReconcileResponse resultado de POST /api/lots/:id/reconcile.
type ReconcileResponse struct {
	Lot       *LotResponse `json:"lot"`
	LedgerSum int64        `json:"ledger_sum"`
	Adjusted  bool         `json:"adjusted"`
}
