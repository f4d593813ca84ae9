package models

// An Item is something queued for shipment to Mars.
type Item struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	Phone     string   `json:"phone" validate:"required"`
	Weight    *float64 `json:"weight,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Important *bool    `json:"important,omitempty"`
}
