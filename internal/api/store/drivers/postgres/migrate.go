package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/postgres/migrations"
)

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func useEmbeddedMigrations() error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.SetDialect("pgx")
}

// ApplyMigrations runs the embedded goose migrations against the pool.
func (s *Store) ApplyMigrations() error {
	if err := useEmbeddedMigrations(); err != nil {
		return err
	}
	return gooseUpContext(context.Background(), s.sqlDB, ".")
}

// SchemaVersion returns the latest applied goose version.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	if err := useEmbeddedMigrations(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, s.sqlDB)
	if err != nil {
		return 0, fmt.Errorf("postgres schema version: %w", err)
	}
	return v, nil
}
