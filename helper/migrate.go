package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// Actions lists the supported migration commands in help order.
var Actions = []string{ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion}

var runners = map[string]func(mig *migrate.Migrate) error{
	ActionUp:     func(mig *migrate.Migrate) error { return mig.Up() },
	ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
	ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
	ActionDrop:   func(mig *migrate.Migrate) error { return mig.Down() },
	ActionVersion: func(mig *migrate.Migrate) error {
		version, dirty, err := mig.Version()
		if err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")

		return nil
	},
}

// connectionString targets the write database.
func connectionString(config *config.Config) string {
	extra := url.Values{}
	if config.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	write := config.DB.Postgres.Write

	return write.DSN(config.DatabaseName(write.Name), extra)
}

func Runner(config *config.Config, action string) error {
	run, ok := runners[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationSource, connectionString(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err = run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

// AutoMigrate applies pending migrations at startup when DB_POSTGRES_AUTO_MIGRATE is set.
func AutoMigrate(config *config.Config) error {
	if !config.DB.Postgres.AutoMigrate {
		return nil
	}

	return Runner(config, ActionUp)
}
