package main

import (
	"github.com/Xenn-00/vorgang-meister/internal/config"
	"github.com/Xenn-00/vorgang-meister/internal/db/migrate"
	"github.com/Xenn-00/vorgang-meister/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	direction := pflag.StringP("direction", "d", "up", "up oder down")
	steps := pflag.IntP("steps", "n", 0, "Anzahl Schritte, 0 = alle")
	configPath := pflag.StringP("config", "c", "", "Pfad zur application.yaml")
	pflag.Parse()

	utils.SetupLogger("info")

	var cfg *config.AppConfig
	if *configPath != "" {
		cfg = config.LoadConfigFrom(*configPath)
	} else {
		cfg = config.LoadConfig()
	}
	if cfg == nil {
		log.Fatal().Msg("Konfiguration konnte nicht geladen werden.")
	}

	if err := migrate.Run(cfg.DATABASE.Postgres.DSN, *direction, *steps); err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("Migration fehlgeschlagen")
	}
}
