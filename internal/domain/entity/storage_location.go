package entity

import "time"

// StorageLocation es una ubicación física dentro de la bodega de la zona franca.
type StorageLocation struct {
	ID          string
	Code        string
	Zone        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
