package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/sqlite/migrations"
)

// migrationsTable is shared by every lexdesk sqlite schema.
const migrationsTable = "schema_migrations"

// migrator builds a golang-migrate instance over the embedded migrations.
// The instance is not closed: its database driver owns m.db.
func (m *Store) migrator() (*migrate.Migrate, error) {
	driver, err := migratesqlite.WithInstance(m.db, &migratesqlite.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("sqlite migrate driver: %w", err)
	}
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("sqlite migrations source: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "sqlite", driver)
}

// ApplyMigrations brings the schema up to date. Running it on an up to date
// schema is a no-op. A schema left dirty by a failed run is reported rather
// than forced.
func (m *Store) ApplyMigrations() error {
	inst, err := m.migrator()
	if err != nil {
		return err
	}
	if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlite migrations: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version, or 0 on an empty
// database.
func (m *Store) SchemaVersion(ctx context.Context) (int64, error) {
	var (
		version int64
		dirty   bool
	)
	err := m.db.QueryRowContext(ctx,
		`SELECT version, dirty FROM `+migrationsTable+` LIMIT 1`,
	).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("sqlite schema version: %w", err)
	case dirty:
		return version, fmt.Errorf("sqlite schema version %d is dirty", version)
	}
	return version, nil
}
