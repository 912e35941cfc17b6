package entity

import "time"

// User representa una cuenta de la aplicación (cada usuario planifica su propia boda).
type User struct {
	ID           string
	Username     string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
