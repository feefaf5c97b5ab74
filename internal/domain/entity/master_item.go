package entity

import "time"

// MasterItem representa un ítem maestro del catálogo (referencia de los lotes).
type MasterItem struct {
	ID        string
	Name      string
	Unit      string // unidad de medida: und, kg, lt, etc.
	CreatedAt time.Time
	UpdatedAt time.Time
}
