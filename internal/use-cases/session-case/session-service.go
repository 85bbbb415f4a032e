package session_case

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	session_repo "github.com/Xenn-00/vorgang-meister/internal/repo/session-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	KeyExpired           = "session.expired"
	KeyLoggedInElsewhere = "session.logged_in_elsewhere"
)

type SessionService struct {
	repo        session_repo.SessionRepoContract
	metrics     *metrics.Metrics
	idleTimeout time.Duration
	outerBound  time.Duration
	now         func() time.Time
}

func NewSessionService(rdb *redis.Client, m *metrics.Metrics, idleTimeout, outerBound time.Duration) SessionServiceContract {
	if outerBound < idleTimeout {
		outerBound = idleTimeout
	}
	return &SessionService{
		repo:        session_repo.NewSessionRepo(rdb),
		metrics:     m,
		idleTimeout: idleTimeout,
		outerBound:  outerBound,
		now:         time.Now,
	}
}

func (s *SessionService) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// Login legt eine neue Session an. Sessions desselben Benutzers von anderer Herkunft werden verdrängt,
// eine erneute Anmeldung vom selben Gerät lässt bestehende Sessions bestehen.
func (s *SessionService) Login(ctx context.Context, principal *entity.Actor, origin string) (*entity.SessionEntity, *app_errors.AppError) {
	token, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}

	now := s.now()
	session := &entity.SessionEntity{
		Token:        token.String(),
		PrincipalID:  principal.ID,
		Username:     principal.Username,
		Role:         principal.Role,
		Origin:       origin,
		LoginAt:      now,
		LastActivity: now,
	}

	evicted, err := s.repo.Create(ctx, session, s.outerBound)
	if err != nil {
		return nil, err
	}

	if evicted > 0 {
		log.Info().Str("user_id", principal.ID).Int("evicted", evicted).Str("origin", origin).Msg("Sessions anderer Geräte beendet")
	}
	s.metrics.SessionEvent("login", 1)
	s.metrics.SessionEvent("evicted", evicted)

	return session, nil
}

// Touch prüft die Session und verschiebt das Ablaufdatum. Eine fehlende Session gilt als
// "anderswo angemeldet", eine vorhandene aber zu lange inaktive als "abgelaufen".
func (s *SessionService) Touch(ctx context.Context, principalID, token string) (*TouchResult, *app_errors.AppError) {
	session, err := s.repo.Find(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.PrincipalID != principalID {
		return nil, app_errors.NewAuthenticationError(KeyLoggedInElsewhere)
	}

	now := s.now()
	if now.Sub(session.LastActivity) > s.idleTimeout {
		if err := s.repo.Delete(ctx, principalID, token); err != nil {
			log.Error().Err(err).Str("user_id", principalID).Msg("Fehler beim Löschen der abgelaufenen Session")
		}
		s.metrics.SessionEvent("expired", 1)
		return nil, app_errors.NewAuthenticationError(KeyExpired)
	}

	ok, err := s.repo.Refresh(ctx, principalID, token, now, s.outerBound)
	if err != nil {
		return nil, err
	}
	if !ok {
		// zwischen Find und Refresh verdrängt
		return nil, app_errors.NewAuthenticationError(KeyLoggedInElsewhere)
	}

	session.LastActivity = now
	return &TouchResult{Session: session, Remaining: s.idleTimeout}, nil
}

func (s *SessionService) Logout(ctx context.Context, principalID, token string) *app_errors.AppError {
	if err := s.repo.Delete(ctx, principalID, token); err != nil {
		return err
	}
	s.metrics.SessionEvent("logout", 1)
	return nil
}

// Sweep entfernt verlassene Sessions jenseits der äußeren Grenze.
func (s *SessionService) Sweep(ctx context.Context) (int, *app_errors.AppError) {
	removed, err := s.repo.Sweep(ctx, s.now().Add(-s.outerBound))
	if err != nil {
		return removed, err
	}
	s.metrics.SessionEvent("swept", removed)
	return removed, nil
}
