package entity

import "time"

// Client representa al tutor de una o más mascotas.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CPF       string
	Address   string
	City      string
	State     string
	ZipCode   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
