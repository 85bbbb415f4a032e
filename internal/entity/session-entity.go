package entity

import "time"

// SessionEntity ist die eine gültige Anmeldung eines Benutzers. Token ist die jti im PASETO.
type SessionEntity struct {
	Token        string    `json:"token"`
	PrincipalID  string    `json:"principal_id"`
	Username     string    `json:"username"`
	Role         UserRole  `json:"role"`
	Origin       string    `json:"origin"`
	LoginAt      time.Time `json:"login_at"`
	LastActivity time.Time `json:"last_activity"`
}
