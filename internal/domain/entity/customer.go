package entity

import "time"

// Customer representa un cliente al que se le emiten cotizaciones y propuestas.
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT / RUT / identificación fiscal
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
