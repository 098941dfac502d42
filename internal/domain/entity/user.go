package entity

import "time"

// Roles válidos para User (role_id en la tabla usuarios).
const (
	RoleAdmin       = 1
	RoleColaborador = 2
)

// User representa un usuario del sistema, asociado a un departamento.
type User struct {
	ID           int64
	Nombre       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RoleID       int
	Departamento string // ventas, contabilidad, produccion
	ResetToken   *string
	ResetExpires *time.Time
}

// IsAdmin indica si el usuario puede administrar pedidos.
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}
