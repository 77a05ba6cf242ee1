package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
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

func (t *txStore) ApplyMigrations() error { return nil } // migrations are applied before starting a tx
