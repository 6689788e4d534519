package models

// Status es el estado lógico de cualquier documento del catálogo.
// La única transición posible es Active -> Inactive.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)
