package entity

import "time"

// UserEntity repräsentiert die Benutzerdaten in der Datenbank.
type UserEntity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        *string   `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor ist der authentifizierte Aufrufer einer Anfrage, wie ihn die Session-Middleware liefert.
type Actor struct {
	ID       string
	Username string
	Role     UserRole
}

type UserRole string

const (
	EMPFAENGER UserRole = "Empfaenger"
	DISPONENT  UserRole = "Disponent"
	TECHNIKER  UserRole = "Techniker"
	ADMIN      UserRole = "Admin"
)

func (u UserRole) IsValid() bool {
	switch u {
	case EMPFAENGER, DISPONENT, TECHNIKER, ADMIN:
		return true
	}

	return false
}
