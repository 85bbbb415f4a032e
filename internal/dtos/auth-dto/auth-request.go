package auth_dto

// LoginUserRequest repräsentiert die Daten, die für die Anmeldung eines Benutzers benötigt werden.
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginMetadata beschreibt, von wo aus angemeldet wird. IP und Gerät bilden zusammen den Ursprung der Session.
type LoginMetadata struct {
	UserAgent string
	Device    string
	IP        string
}

// Origin ist die Kennung des Geräts im Session Store.
func (m LoginMetadata) Origin() string {
	device := m.Device
	if device == "" {
		device = "Unknown Device"
	}
	return m.IP + "/" + device
}
