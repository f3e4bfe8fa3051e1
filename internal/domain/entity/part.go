package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part es la referencia de mercancía admisible en la zona franca.
// HTSCode es la partida arancelaria (Harmonized Tariff Schedule).
type Part struct {
	ID              string
	SKU             string
	Description     string
	CountryOfOrigin string
	HTSCode         string
	UnitValue       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
