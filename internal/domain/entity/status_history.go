package entity

import "time"

// StatusHistory registra cada transición de estado de un lote con su motivo.
type StatusHistory struct {
	ID             string
	LotID          string
	PreviousStatus string
	NewStatus      string
	ChangeReason   string
	CreatedAt      time.Time
	CreatedBy      string
}
