package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob/local"
	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const (
	rootEmail     = "root@estudio.example"
	rootPassword  = "root-password-123"
	adminEmail    = "admin@estudio.example"
	adminPhone    = "+598 99 123 456"
	adminPassword = "admin-password-123"
	testCSRF      = "test-csrf-token"
)

type testEnv struct {
	router  *Router
	issuer  *jwtx.SessionIssuer
	store   *sqlite.Store
	reviews *service.ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	issuer, err := jwtx.NewSessionIssuer([]byte("router-test-secret"), "lexdesk-test", 0,
		jwtx.WithRoles(domain.Roles()...))
	require.NoError(t, err)

	cipher, err := cryptox.NewPIICipher([]byte(strings.Repeat("k", cryptox.PIIKeySize)))
	require.NoError(t, err)

	blobs, err := local.New(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := NewRouter(issuer, httpx.NewCookiePolicy("dev"), httpx.NewCORSConfig("https://estudio.example"),
		httpx.DefaultRateLimits(), false, "test", st, logger)
	require.NoError(t, err)

	auth := &service.AuthService{Store: st, Hasher: cryptox.NewPasswordHasher("pepper"), Issuer: issuer}
	require.NoError(t, auth.EnsureConfiguredUsers(context.Background(),
		service.Account{Email: rootEmail, Password: rootPassword},
		service.Account{Email: adminEmail, Phone: adminPhone, Password: adminPassword},
	))

	reviews := &service.ReviewService{Store: st, Notifier: notify.Noop{}}
	t.Cleanup(reviews.Wait)

	r.AuthService = auth
	r.IntakeService = &service.IntakeService{Store: st, Cipher: cipher, Notifier: notify.Noop{}}
	r.AdminService = &service.AdminService{Store: st, Cipher: cipher}
	r.ReviewService = reviews
	r.AnalyticsService = &service.AnalyticsService{Store: st}
	r.UploadService = &service.UploadService{Blobs: blobs}
	r.CatalogService = &service.CatalogService{Store: st}
	r.CartService = &service.CartService{Store: st}
	r.OrderService = &service.OrderService{Store: st, Cipher: cipher, Notifier: notify.Noop{}}
	r.ApplyRoutes()

	return &testEnv{router: r, issuer: issuer, store: st, reviews: reviews}
}

// client starts a server for the router and returns an SDK client for it.
func (e *testEnv) client(t *testing.T) *lexsdk.SDKClient {
	t.Helper()
	srv := httptest.NewServer(e.router)
	t.Cleanup(srv.Close)
	c, err := lexsdk.NewSDKClient(srv.URL)
	require.NoError(t, err)
	return c
}

// sessionFor mints a session cookie for role.
func (e *testEnv) sessionFor(t *testing.T, role domain.Role) *http.Cookie {
	t.Helper()
	token, err := e.issuer.Issue(jwtx.Identity{Subject: "u-" + string(role), Email: string(role) + "@x.example", Role: string(role)})
	require.NoError(t, err)
	return &http.Cookie{Name: httpx.DefaultSessionCookie, Value: token}
}

// request builds a request that passes the CSRF check unless the caller
// strips the cookie or header.
func request(method, path, body string, cookies ...*http.Cookie) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: testCSRF})
	req.Header.Set(httpx.CSRFHeader, testCSRF)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
