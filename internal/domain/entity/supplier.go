package entity

import "time"

// Supplier representa un proveedor de productos de la clínica.
type Supplier struct {
	ID        string
	Name      string
	CNPJ      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
