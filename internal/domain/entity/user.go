package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "Administrador"
	RoleUser  = "Usuario"
)

// UserAccount usuario de la empresa. PasswordHash es bcrypt y nunca se expone en la API.
type UserAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// ConnectionLog entrada del registro de conexiones (se agrega al iniciar sesión).
type ConnectionLog struct {
	ID        string `json:"id"`
	UserEmail string `json:"userEmail"`
	Timestamp string `json:"timestamp"` // fecha/hora localizada es-CO
}
