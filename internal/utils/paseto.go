package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

const (
	tokenAudience = "Vorgang-meister"
	tokenIssuer   = "VM-service"
)

// PasetoMaker verarbeitet lokale PASETO-Operationen der Version 4 (symmetrisch).
type PasetoMaker struct {
	symmetricKey paseto.V4SymmetricKey
	now          func() time.Time
}

// NewPasetoMaker creates instance with existing key
func NewPasetoMaker(keyHex string) (*PasetoMaker, error) {
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, fmt.Errorf("Invalid symmetric key: %w", err)
	}

	return &PasetoMaker{
		symmetricKey: key,
		now:          time.Now,
	}, nil
}

// GenerateSymmetricKey generiert einen neuen symmetrischen V4-Schlüssel. Wird verwendet, wenn kein hexKey vorhanden ist, nur einmal.
func GenerateSymmetricKey() string {
	key := paseto.NewV4SymmetricKey()
	return hex.EncodeToString(key.ExportBytes())
}

// CreateToken erstellt ein lokales V4 Token (encrypted). Die Gültigkeit des Tokens ist nur
// die äußere Schranke; die gleitende Inaktivitätsgrenze prüft der Session Store.
func (m *PasetoMaker) CreateToken(userID, username, role, sessionID string, duration time.Duration) (string, error) {
	now := m.now()
	token := paseto.NewToken()

	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetAudience(tokenAudience)
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID)
	token.SetJti(sessionID)

	token.SetString("username", username)
	token.SetString("role", role)

	return token.V4Encrypt(m.symmetricKey, nil), nil
}

type PayloadPaseto struct {
	UserID    string
	Username  string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// VerifyToken decrypts und überprüft das lokale V4 Token.
func (m *PasetoMaker) VerifyToken(tokenString string) (*PayloadPaseto, error) {
	parser := paseto.NewParser()

	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(m.now()))

	parsedToken, err := parser.ParseV4Local(m.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("Token decryption/verification failed: %w", err)
	}

	userID, err := parsedToken.GetSubject()
	if err != nil {
		return nil, err
	}
	jti, err := parsedToken.GetJti()
	if err != nil {
		return nil, err
	}
	if userID == "" || jti == "" {
		return nil, errors.New("token without subject or jti")
	}
	username, _ := parsedToken.GetString("username")
	role, _ := parsedToken.GetString("role")
	exp, _ := parsedToken.GetExpiration()

	return &PayloadPaseto{
		UserID:    userID,
		Username:  username,
		Role:      role,
		JTI:       jti,
		ExpiresAt: exp,
	}, nil
}
