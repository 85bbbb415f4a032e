package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost ist der bcrypt-Kostenfaktor für neue Hashes.
var PasswordCost = bcrypt.DefaultCost

// GenerateHash erzeugt einen bcrypt-Hash für das Klartext-Passwort.
func GenerateHash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyHash vergleicht das Passwort zeitkonstant mit dem gespeicherten Hash.
// Ein falsches Passwort liefert (false, nil), ein defekter Hash einen Fehler.
func VerifyHash(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
