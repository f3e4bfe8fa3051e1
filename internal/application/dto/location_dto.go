package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code        string `json:"code"`
	Zone        string `json:"zone,omitempty"`
	Description string `json:"description,omitempty"`
}

// LocationResponse representación HTTP de una ubicación de bodega.
type LocationResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Zone        string    `json:"zone,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
