package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/storetest"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.SchemaVersion(context.Background())
	require.Error(t, err, "no migrations table yet")
	require.Zero(t, v)

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))

	v, err = s.SchemaVersion(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, v)
}

func TestSeededLegalServices(t *testing.T) {
	s := newMemoryStore(t)

	svc, err := s.LegalServices().GetEnabledLegalService(context.Background(), "consulta-general")
	require.NoError(t, err)
	require.EqualValues(t, domain.DefaultServiceFeeUYU, svc.TotalUYU())

	all, err := s.LegalServices().ListEnabledLegalServices(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 8)
}

func TestTxStore_NestedTxRejected(t *testing.T) {
	s := newMemoryStore(t)
	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		_, err := tx.Tx(context.Background())
		require.Error(t, err)
		return tx.WithTx(context.Background(), func(store.Tx) error { return nil })
	})
	require.Error(t, err)
}

func newMockStore(t *testing.T) (*sqlite.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlite.NewStoreFromDB(db), mock
}

func TestUsers_DBError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("a@example.com").
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Users().GetUserByEmail(context.Background(), " A@Example.com ")
	require.EqualError(t, err, "disk I/O error")
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_UniqueViolationMapped(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))

	err := s.Users().CreateUser(context.Background(), domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleUser})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestReviews_SetStatusNoRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE reviews SET status = \?, approved_at = \? WHERE id = \?`).
		WithArgs("approved", sqlmock.AnyArg(), "r1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now()
	err := s.Reviews().SetReviewStatus(context.Background(), "r1", domain.ReviewApproved, &now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReviews_ListScanError(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "rating", "message", "status", "created_at", "approved_at"}).
		AddRow("r1", "Ana", 5, "Muy buena atención", "approved", "not-a-time", nil)
	mock.ExpectQuery(`FROM reviews\s+WHERE status = 'approved'`).
		WithArgs(12).
		WillReturnRows(rows)

	_, err := s.Reviews().ListApprovedReviews(context.Background(), 12)
	require.Error(t, err)
}

func TestPageViews_CountError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM page_views`).
		WillReturnError(errors.New("no such table: page_views"))

	_, err := s.PageViews().CountPageViewsSince(context.Background(), time.Now())
	require.Error(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO page_views`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		require.NoError(t, tx.PageViews().CreatePageView(context.Background(), domain.PageView{ID: "p1", Path: "/"}))
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestWithTx_Commits(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM auth_audit WHERE created_at < \?`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		n, err := tx.AuthAudits().DeleteAuthAuditsBefore(context.Background(), time.Now())
		require.EqualValues(t, 3, n)
		return err
	})
	require.NoError(t, err)
}
