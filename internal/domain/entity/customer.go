package entity

import "time"

// Customer es el importador/propietario de la mercancía admitida.
type Customer struct {
	ID        string
	Name      string
	TaxID     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
