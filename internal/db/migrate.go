package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/moonman369/Crowd-Funding-Contract/db/migrations"
)

// MigratePostgres applies all up migrations to the database at addr.
func MigratePostgres(addr string) error {
	return migrateTo(migrations.PostgresFS, migrations.PostgresDir, addr)
}

// MigrateSQLite applies all up migrations to the SQLite file at path.
func MigrateSQLite(path string) error {
	return migrateTo(migrations.SQLiteFS, migrations.SQLiteDir, "sqlite://"+filepath.ToSlash(filepath.Clean(path)))
}

func migrateTo(fsys fs.FS, dir, addr string) error {
	driver, err := iofs.New(fsys, dir)
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("database is in dirty state")
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate to version %d: %w", migrations.Version, err)
	}

	return nil
}
