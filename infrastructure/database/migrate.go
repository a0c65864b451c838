package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-orchestrator/db/migrations"
	"github.com/vfg2006/campaign-orchestrator/internal/config"
)

// MigrationURL monta a URL que o golang-migrate espera para o driver
func MigrationURL(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case "postgres":
		return cfg.DSN, nil
	case "sqlite3":
		return "sqlite3://" + strings.TrimPrefix(cfg.URL, "file:"), nil
	default:
		return "", fmt.Errorf("database: driver sem migrações: %q", cfg.Driver)
	}
}

// Migrate aplica as migrações embutidas até migrations.Version
func Migrate(cfg config.Database) error {
	addr, err := MigrationURL(cfg)
	if err != nil {
		return err
	}

	driver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("database is in dirty state")
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"driver":  cfg.Driver,
		"from":    current,
		"version": migrations.Version,
	}).Info("Migrações aplicadas")

	return nil
}
