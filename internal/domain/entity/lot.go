package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
// DEPLETED y VOIDED son derivados (cantidad cero / anulación); el resto se fija explícitamente.
const (
	StatusInStock  = "IN_STOCK"
	StatusReserved = "RESERVED"
	StatusOnHold   = "ON_HOLD"
	StatusDepleted = "DEPLETED"
	StatusVoided   = "VOIDED"
)

// Lot representa un lote admitido en la zona franca, rastreado de forma
// independiente para efectos aduaneros. CurrentQuantity es una columna cacheada:
// la fuente de verdad es la suma de sus transacciones.
type Lot struct {
	ID                string
	PartID            string
	CustomerID        string
	StorageLocationID string
	Status            string
	OriginalQuantity  int64 // inmutable después de la admisión
	CurrentQuantity   int64
	AdmissionDate     time.Time
	ManifestNumber    string
	BillOfLading      string
	TotalValue        decimal.Decimal
	Voided            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
	UpdatedBy         string
}

// IsExplicitStatus indica si s es uno de los estados que un operador puede fijar
// directamente (los derivados DEPLETED/VOIDED no se aceptan como entrada).
func IsExplicitStatus(s string) bool {
	return s == StatusInStock || s == StatusReserved || s == StatusOnHold
}
