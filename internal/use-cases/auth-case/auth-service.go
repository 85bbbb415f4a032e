package auth_case

import (
	"context"
	"time"

	auth_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/auth-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	session_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/session-case"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// TokenMaker stellt das Bearer-Token aus. Die jti ist das Session-Token aus dem Session Store.
type TokenMaker interface {
	CreateToken(userID, username, role, sessionID string, duration time.Duration) (string, error)
}

type AuthService struct {
	verifier   CredentialVerifier
	sessions   session_case.SessionServiceContract
	tokens     TokenMaker
	outerBound time.Duration
	now        func() time.Time
}

func NewAuthService(verifier CredentialVerifier, sessions session_case.SessionServiceContract, tokens TokenMaker, outerBound time.Duration) AuthServiceContract {
	return &AuthService{
		verifier:   verifier,
		sessions:   sessions,
		tokens:     tokens,
		outerBound: outerBound,
		now:        time.Now,
	}
}

// LoginUser prüft die Zugangsdaten, eröffnet die einzige gültige Session des Benutzers
// (andere Geräte werden abgemeldet) und stellt ein PASETO mit der Session als jti aus.
func (s *AuthService) LoginUser(ctx context.Context, req auth_dto.LoginUserRequest, loginMeta auth_dto.LoginMetadata) (*auth_dto.LoginUserResponse, *app_errors.AppError) {
	user, err := s.verifier.Verify(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn().Str("username", req.Username).Str("ip", loginMeta.IP).Msg("Anmeldung abgelehnt")
		return nil, err
	}

	principal := &entity.Actor{ID: user.ID, Username: user.Username, Role: user.Role}
	session, err := s.sessions.Login(ctx, principal, loginMeta.Origin())
	if err != nil {
		return nil, err
	}

	token, pasetoErr := s.tokens.CreateToken(principal.ID, principal.Username, string(principal.Role), session.Token, s.outerBound)
	if pasetoErr != nil {
		log.Error().Err(pasetoErr).Msg("Fehler beim Erstellen der Paseto-Token")
		// Session ohne Token ist nutzlos
		if delErr := s.sessions.Logout(ctx, user.ID, session.Token); delErr != nil {
			log.Error().Err(delErr.Err).Msg("Fehler beim Entfernen der Session")
		}
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", pasetoErr)
	}

	return &auth_dto.LoginUserResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		Token:       token,
		IdleTimeout: int64(s.sessions.IdleTimeout() / time.Second),
		ExpiresAt:   session.LoginAt.Add(s.outerBound),
	}, nil
}

func (s *AuthService) LogoutUser(ctx context.Context, userID, sessionID string) *app_errors.AppError {
	return s.sessions.Logout(ctx, userID, sessionID)
}

// RenewToken stellt für eine bereits geprüfte Session ein neues Token aus. Die Gültigkeit
// gleitet damit wie die Session selbst, solange der Client aktiv bleibt.
func (s *AuthService) RenewToken(ctx context.Context, actor *entity.Actor, sessionID string) (*auth_dto.RenewTokenResponse, *app_errors.AppError) {
	if actor == nil || actor.ID == "" || sessionID == "" {
		return nil, app_errors.NewAuthenticationError("auth.unauthorized")
	}

	issuedAt := s.now().UTC()
	token, err := s.tokens.CreateToken(actor.ID, actor.Username, string(actor.Role), sessionID, s.outerBound)
	if err != nil {
		log.Error().Err(err).Str("user_id", actor.ID).Msg("Fehler beim Erneuern der Paseto-Token")
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return &auth_dto.RenewTokenResponse{
		Token:     token,
		ExpiresAt: issuedAt.Add(s.outerBound),
	}, nil
}
