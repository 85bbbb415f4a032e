package auth_case

import (
	"context"
	"strings"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	user_repo "github.com/Xenn-00/vorgang-meister/internal/repo/user-repo"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/rs/zerolog/log"
)

const KeyInvalidCredentials = "auth.invalid_credentials"

// CredentialVerifier prüft Benutzername und Passwort gegen den gespeicherten bcrypt-Hash.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*entity.UserEntity, *app_errors.AppError)
}

type BcryptVerifier struct {
	repo user_repo.UserRepoContract
}

func NewBcryptVerifier(repo user_repo.UserRepoContract) *BcryptVerifier {
	return &BcryptVerifier{repo: repo}
}

// Verify unterscheidet nach außen nicht zwischen unbekanntem Benutzer, falschem Passwort und deaktiviertem Konto.
func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (*entity.UserEntity, *app_errors.AppError) {
	user, err := v.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err.Type == app_errors.ErrNotFound {
			return nil, app_errors.NewAuthenticationError(KeyInvalidCredentials)
		}
		return nil, err
	}

	ok, hashErr := utils.VerifyHash(user.PasswordHash, password)
	if hashErr != nil {
		log.Error().Err(hashErr).Str("user_id", user.ID).Msg("Gespeicherter Passwort-Hash ist ungültig")
		return nil, app_errors.NewAuthenticationError(KeyInvalidCredentials)
	}
	if !ok || !user.IsActive {
		return nil, app_errors.NewAuthenticationError(KeyInvalidCredentials)
	}
	return user, nil
}
