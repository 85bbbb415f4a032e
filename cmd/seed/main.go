package main

// seed legt einen ersten Benutzer an, typischerweise den Admin einer frischen Installation.

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/config"
	"github.com/Xenn-00/vorgang-meister/internal/db"
	user_dto "github.com/Xenn-00/vorgang-meister/internal/dtos/user-dto"
	"github.com/Xenn-00/vorgang-meister/internal/entity"
	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	user_case "github.com/Xenn-00/vorgang-meister/internal/use-cases/user-case"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	username := pflag.StringP("username", "u", "admin", "Benutzername")
	password := pflag.StringP("password", "p", "", "Passwort (mind. 8 Zeichen)")
	fullName := pflag.String("full-name", "Administrator", "Anzeigename")
	email := pflag.String("email", "", "E-Mail-Adresse (optional)")
	role := pflag.String("role", string(entity.ADMIN), "Rolle: Empfaenger, Disponent, Techniker, Admin")
	pflag.Parse()

	utils.SetupLogger("info")

	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden.")
	}

	req := user_dto.CreateUserRequest{
		Username: *username,
		FullName: *fullName,
		Password: *password,
		Role:     *role,
	}
	if *email != "" {
		req.Email = email
	}

	v := validator.New()
	user_dto.RegisterValidators(v)
	if err := v.Struct(req); err != nil {
		for _, fe := range app_errors.ParseValidationError(err) {
			log.Error().Str("field", fe.Field).Str("reason", fe.Reason).Msg("Ungültige Eingabe")
		}
		log.Fatal().Msg("Benutzer nicht angelegt.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := db.ConnectPool(ctx, cfg.DATABASE.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Postgres nicht erreichbar.")
	}
	defer dbPool.Close()
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, cfg.DATABASE.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis nicht erreichbar.")
	}
	defer redisPool.Close()

	created, appErr := user_case.NewUserService(dbPool, redisPool).CreateUser(ctx, req)
	if appErr != nil {
		log.Fatal().Err(appErr).Str("key", appErr.MessageKey).Msg("Benutzer nicht angelegt.")
	}
	log.Info().Str("id", created.ID).Str("username", created.Username).Str("role", string(created.Role)).Msg("Benutzer angelegt")
}
