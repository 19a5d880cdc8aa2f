package entity

import "time"

// Roles de usuario de la clínica.
const (
	RoleAdmin       = "admin"
	RoleVeterinario = "veterinario"
	RoleRecepcion   = "recepcion"
)

// User representa a un miembro del personal de la clínica.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
