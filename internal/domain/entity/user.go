package entity

import "time"

// Roles de usuario del back-office.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User representa un usuario del back-office. El Session Guard lo resuelve a
// partir de la credencial y el ledger usa su ID verbatim como CreatedBy.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ADMIN, STAFF
	Status       string // ACTIVE, INACTIVE
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
