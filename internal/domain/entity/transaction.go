package entity

import "time"

// Tipos de transacción del libro mayor de un lote.
const (
	TransactionTypeAdmission  = "ADMISSION"  // admisión inicial
	TransactionTypeShipment   = "SHIPMENT"   // salida por despacho
	TransactionTypeAdjustment = "ADJUSTMENT" // ajuste de cantidad
	TransactionTypeRemoval    = "REMOVAL"    // retiro terminal (anulación)
)

// LotTransaction es un evento de cantidad con signo dentro del libro mayor de un lote.
// Las transacciones nunca se editan ni se borran; la cantidad vigente del lote
// es la suma de sus transacciones.
type LotTransaction struct {
	ID             string
	LotID          string
	Type           string
	Quantity       int64 // delta con signo: positivo entrada, negativo salida
	SourceDocument string
	CreatedAt      time.Time
	CreatedBy      string
}
