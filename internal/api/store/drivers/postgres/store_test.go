package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

func TestNewStore_InvalidDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "postgres://%zz")
	require.ErrorContains(t, err, "failed to parse postgres dsn")
}

func TestApplyMigrations_UsesEmbeddedDir(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return errors.New("stop")
	}

	s := &Store{}
	require.EqualError(t, s.ApplyMigrations(), "stop")
	require.Equal(t, ".", gotDir)
}

func TestErrorMapping(t *testing.T) {
	require.ErrorIs(t, mapNotFound(pgx.ErrNoRows), store.ErrNotFound)
	require.ErrorIs(t, mapUniqueViolation(&pgconn.PgError{Code: uniqueViolation}), store.ErrAlreadyExists)

	other := &pgconn.PgError{Code: "23503"}
	require.ErrorIs(t, mapUniqueViolation(other), other)
	require.NoError(t, mapUniqueViolation(nil))

	require.ErrorIs(t, requireAffected(pgconn.NewCommandTag("UPDATE 0"), nil), store.ErrNotFound)
	require.NoError(t, requireAffected(pgconn.NewCommandTag("DELETE 1"), nil))
}
