package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	SKU             string          `json:"sku"`
	Description     string          `json:"description"`
	CountryOfOrigin string          `json:"country_of_origin,omitempty"`
	HTSCode         string          `json:"hts_code,omitempty"`
	UnitValue       decimal.Decimal `json:"unit_value,omitempty"`
}

// PartResponse representación HTTP de una referencia.
type PartResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Description     string          `json:"description"`
	CountryOfOrigin string          `json:"country_of_origin,omitempty"`
	HTSCode         string          `json:"hts_code,omitempty"`
	UnitValue       decimal.Decimal `json:"unit_value"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
