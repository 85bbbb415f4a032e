package middleware

import (
	"strconv"
	"strings"

	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	session_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/session-case"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	LocalActor    = "actor"
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalJTI      = "jti"

	HeaderSessionRemaining = "X-Session-Remaining"
)

// TokenVerifier prüft ein PASETO-Token und liefert dessen Payload.
type TokenVerifier interface {
	VerifyToken(token string) (*utils.PayloadPaseto, error)
}

// SessionMiddleware validiert "Authorization: Bearer <token>" und fragt danach den Session Store.
// Ein gültiges Token reicht nicht: die Session muss noch die eine aktive des Benutzers sein
// und darf nicht länger als das Inaktivitätslimit ruhen. Jede erfolgreiche Prüfung zählt als Aktivität.
func SessionMiddleware(tokens TokenVerifier, sessions session_case.SessionServiceContract) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || token == "" {
			return app_errors.NewAuthenticationError("session.missing_token")
		}

		payload, err := tokens.VerifyToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", requestID(c)).Msg("Token-Verifizierung fehlgeschlagen")
			return app_errors.NewAuthenticationError("session.invalid_token")
		}

		result, appErr := sessions.Touch(c.Context(), payload.UserID, payload.JTI)
		if appErr != nil {
			return appErr
		}

		// Rolle kommt aus dem Session Store, nicht aus dem Token
		actor := &entity.Actor{
			ID:       result.Session.PrincipalID,
			Username: result.Session.Username,
			Role:     result.Session.Role,
		}

		c.Locals(LocalActor, actor)
		c.Locals(LocalUserID, actor.ID)
		c.Locals(LocalUsername, actor.Username)
		c.Locals(LocalJTI, payload.JTI)
		c.Set(HeaderSessionRemaining, strconv.FormatInt(int64(result.Remaining.Seconds()), 10))

		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("request_id").(string)
	return id
}
