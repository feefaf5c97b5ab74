package dto

import "time"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

// ItemDTO respuesta de un ítem maestro.
type ItemDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
