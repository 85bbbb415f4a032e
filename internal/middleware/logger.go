package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// LoggerMiddleware protokolliert eingehende Anfragen und deren Antworten.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		}

		userID, _ := c.Locals(LocalUserID).(string)
		event.
			Str("request_id", requestID(c)).
			Str("user_id", userID).
			Msgf("%s %s (%v) %d", c.Method(), c.Path(), duration, status)

		return err
	}
}
