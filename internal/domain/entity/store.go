package entity

import "time"

// Store representa una tienda destino de las ventas (salidas DECREASE).
// El borrado es lógico: pasa a INACTIVE y conserva su historial en el ledger.
type Store struct {
	ID        string
	Code      string // único (case-insensitive)
	Name      string
	Address   string
	Phone     string
	Status    string // ACTIVE, INACTIVE
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}
