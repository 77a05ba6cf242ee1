package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
)

var errBoom = errors.New("boom")

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCipher(t *testing.T) *cryptox.PIICipher {
	t.Helper()
	c, err := cryptox.NewPIICipher(bytes.Repeat([]byte{0x5a}, cryptox.PIIKeySize))
	require.NoError(t, err)
	return c
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// countAudits counts audit rows by deleting them all.
func countAudits(t *testing.T, s store.Store) int64 {
	t.Helper()
	n, err := s.AuthAudits().DeleteAuthAuditsBefore(context.Background(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	return n
}

// recordingNotifier captures messages and returns err from every call.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *recordingNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

// failingStore breaks selected repositories of an otherwise working store.
type failingStore struct {
	store.Store
	legalServices store.LegalServices
	pageViews     store.PageViews
	audits        store.AuthAudits
	reviews       store.Reviews
}

func (f failingStore) LegalServices() store.LegalServices {
	if f.legalServices != nil {
		return f.legalServices
	}
	return f.Store.LegalServices()
}

func (f failingStore) PageViews() store.PageViews {
	if f.pageViews != nil {
		return f.pageViews
	}
	return f.Store.PageViews()
}

func (f failingStore) AuthAudits() store.AuthAudits {
	if f.audits != nil {
		return f.audits
	}
	return f.Store.AuthAudits()
}

func (f failingStore) Reviews() store.Reviews {
	if f.reviews != nil {
		return f.reviews
	}
	return f.Store.Reviews()
}

type brokenLegalServices struct{}

func (brokenLegalServices) GetEnabledLegalService(context.Context, string) (domain.LegalService, error) {
	return domain.LegalService{}, errBoom
}
func (brokenLegalServices) ListEnabledLegalServices(context.Context) ([]domain.LegalService, error) {
	return nil, errBoom
}
func (brokenLegalServices) UpsertLegalService(context.Context, domain.LegalService) error {
	return errBoom
}

type brokenPageViews struct{}

func (brokenPageViews) CreatePageView(context.Context, domain.PageView) error { return errBoom }
func (brokenPageViews) CountPageViewsSince(context.Context, time.Time) (int, error) {
	return 0, errBoom
}
func (brokenPageViews) PageViewsPerDay(context.Context, time.Time) ([]domain.DayCount, error) {
	return nil, errBoom
}
func (brokenPageViews) TopPaths(context.Context, time.Time, int) ([]domain.PathCount, error) {
	return nil, errBoom
}
func (brokenPageViews) ListRecentPageViews(context.Context, int) ([]domain.PageView, error) {
	return nil, errBoom
}

type brokenAudits struct{}

func (brokenAudits) CreateAuthAudit(context.Context, domain.AuthAudit) error { return errBoom }
func (brokenAudits) DeleteAuthAuditsBefore(context.Context, time.Time) (int64, error) {
	return 0, errBoom
}

func cipherWithFill(b byte) (*cryptox.PIICipher, error) {
	return cryptox.NewPIICipher(bytes.Repeat([]byte{b}, cryptox.PIIKeySize))
}
