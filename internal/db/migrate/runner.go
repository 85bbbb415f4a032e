// Package migrate spielt die eingebetteten SQL-Migrationen mit golang-migrate ein.
package migrate

import (
	"errors"
	"fmt"

	"github.com/Xenn-00/vorgang-meister/internal/db"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

// ErrNoChange wird geliefert, wenn die Datenbank bereits auf dem Zielstand ist.
var ErrNoChange = migrate.ErrNoChange

// Run führt die Migrationen in Richtung "up" oder "down" aus. steps > 0 begrenzt die Anzahl der Schritte.
func Run(dsn string, direction string, steps int) error {
	if dsn == "" {
		return errors.New("DATABASE.POSTGRES.DSN ist nicht gesetzt")
	}
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	sourceDriver, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	switch {
	case steps > 0 && direction == "up":
		err = m.Steps(steps)
	case steps > 0:
		err = m.Steps(-steps)
	case direction == "up":
		err = m.Up()
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration abgeschlossen")
	}
	return nil
}
