package auth_dto

import "time"

// LoginUserResponse repräsentiert die Daten, die nach der Anmeldung eines Benutzers zurückgegeben werden.
type LoginUserResponse struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Token       string    `json:"token"`
	IdleTimeout int64     `json:"idle_timeout_seconds"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RenewTokenResponse: das alte Token bleibt bis zu seinem eigenen Ablauf gültig.
type RenewTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HeartbeatResponse struct {
	RemainingSeconds int64     `json:"remaining_seconds"`
	LastActivity     time.Time `json:"last_activity"`
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expires_at"`
}
