package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

const uniqueViolation = "23505"

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool

	// sqlDB shares the pool and exists for goose, which speaks database/sql.
	sqlDB *sql.DB
}

// NewStore opens a connection pool for dsn. Migrations are not applied.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	return &Store{
		pool:  pool,
		sqlDB: stdlib.OpenDBFromPool(pool),
	}, nil
}

func (s *Store) Close() error {
	err := s.sqlDB.Close()
	s.pool.Close()
	return err
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, ctx: ctx}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{db: s.pool} }
func (s *Store) AuthAudits() store.AuthAudits       { return &authAuditsRepo{db: s.pool} }
func (s *Store) Contacts() store.Contacts           { return &contactsRepo{db: s.pool} }
func (s *Store) Reports() store.Reports             { return &reportsRepo{db: s.pool} }
func (s *Store) LegalServices() store.LegalServices { return &legalServicesRepo{db: s.pool} }
func (s *Store) Reviews() store.Reviews             { return &reviewsRepo{db: s.pool} }
func (s *Store) PageViews() store.PageViews         { return &pageViewsRepo{db: s.pool} }
func (s *Store) Products() store.Products           { return &productsRepo{db: s.pool} }
func (s *Store) Carts() store.Carts                 { return &cartsRepo{db: s.pool} }
func (s *Store) Orders() store.Orders               { return &ordersRepo{db: s.pool} }

type txStore struct {
	tx  pgx.Tx
	ctx context.Context
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(t.ctx) }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, pgx.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) AuthAudits() store.AuthAudits       { return &authAuditsRepo{db: t.tx} }
func (t *txStore) Contacts() store.Contacts           { return &contactsRepo{db: t.tx} }
func (t *txStore) Reports() store.Reports             { return &reportsRepo{db: t.tx} }
func (t *txStore) LegalServices() store.LegalServices { return &legalServicesRepo{db: t.tx} }
func (t *txStore) Reviews() store.Reviews             { return &reviewsRepo{db: t.tx} }
func (t *txStore) PageViews() store.PageViews         { return &pageViewsRepo{db: t.tx} }
func (t *txStore) Products() store.Products           { return &productsRepo{db: t.tx} }
func (t *txStore) Carts() store.Carts                 { return &cartsRepo{db: t.tx} }
func (t *txStore) Orders() store.Orders               { return &ordersRepo{db: t.tx} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrAlreadyExists
	}
	return err
}

func requireAffected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
