package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

func TestNewRouter_RejectsWildcardOrigin(t *testing.T) {
	t.Parallel()

	cors := httpx.NewCORSConfig("https://estudio.example", "*")
	_, err := NewRouter(nil, httpx.NewCookiePolicy("dev"), cors, httpx.DefaultRateLimits(), false, "test", nil, nil)
	require.ErrorIs(t, err, httpx.ErrWildcardOrigin)
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)
	ctx := context.Background()

	require.NoError(t, client.Health(ctx))
	require.NotEmpty(t, client.CSRFToken(), "first request issues a csrf cookie")

	me, err := client.Me(ctx)
	require.NoError(t, err)
	require.False(t, me.Authenticated)
	require.Nil(t, me.User)

	user, err := client.Login(ctx, lexsdk.LoginRequest{Email: adminEmail, Password: adminPassword, Phone: "+598 (99) 123-456"})
	require.NoError(t, err)
	require.Equal(t, adminEmail, user.Email)
	require.NotEmpty(t, client.Cookie(lexsdk.SessionCookieName))

	me, err = client.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.Authenticated)
	require.Equal(t, "admin", me.User.Role)

	require.NoError(t, client.Logout(ctx))
	require.Empty(t, client.Cookie(lexsdk.SessionCookieName))

	me, err = client.Me(ctx)
	require.NoError(t, err)
	require.False(t, me.Authenticated)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	h := env.router

	t.Run("root needs no phone", func(t *testing.T) {
		rec := serve(h, request(http.MethodPost, "/api/auth/login",
			`{"email":"`+rootEmail+`","password":"`+rootPassword+`"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"ok":true}`, rec.Body.String())

		c := findCookie(rec, httpx.DefaultSessionCookie)
		require.NotNil(t, c)
		require.True(t, c.HttpOnly)
		require.Equal(t, int((8 * time.Hour).Seconds()), c.MaxAge)

		id, err := env.issuer.Verify(c.Value)
		require.NoError(t, err)
		require.Equal(t, "root", id.Role)
	})

	t.Run("admin with wrong phone", func(t *testing.T) {
		rec := serve(h, request(http.MethodPost, "/api/auth/login",
			`{"email":"`+adminEmail+`","password":"`+adminPassword+`","phone":"000"}`))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"message":"invalid credentials"}`, rec.Body.String())
		require.Nil(t, findCookie(rec, httpx.DefaultSessionCookie))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := serve(h, request(http.MethodPost, "/api/auth/login",
			`{"email":"`+rootEmail+`","password":"not-the-password"}`))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := serve(h, request(http.MethodPost, "/api/auth/login", `{"email":`))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = serve(h, request(http.MethodPost, "/api/auth/login", `{"email":"nope","password":"x"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"message":"invalid body"}`, rec.Body.String())
	})

	// Every attempt above was audited: 1 success, 2 rejected, 2 invalid.
	n, err := env.store.AuthAudits().DeleteAuthAuditsBefore(context.Background(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 5, n)
}

func TestCSRFMatrix(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	body := `{"name":"Ana Pérez","email":"ana@example.com","message":"Necesito asesoramiento laboral.","acceptPrivacy":true}`

	cases := []struct {
		name   string
		cookie string
		header string
		want   int
	}{
		{"neither", "", "", http.StatusForbidden},
		{"cookie only", "abc", "", http.StatusForbidden},
		{"header only", "", "abc", http.StatusForbidden},
		{"mismatch", "abc", "abd", http.StatusForbidden},
		{"match", "abc", "abc", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request(http.MethodPost, "/api/contact", body)
			req.Header.Del("Cookie")
			req.Header.Del(httpx.CSRFHeader)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: httpx.DefaultCSRFCookie, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set(httpx.CSRFHeader, tc.header)
			}

			rec := serve(env.router, req)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())
			if tc.want == http.StatusForbidden {
				require.JSONEq(t, `{"message":"invalid csrf token"}`, rec.Body.String())
			}
			if tc.cookie == "" {
				require.NotNil(t, findCookie(rec, httpx.DefaultCSRFCookie), "rejected requests still get a csrf cookie")
			}
		})
	}

	t.Run("safe methods pass without token", func(t *testing.T) {
		req := request(http.MethodGet, "/api/services", "")
		req.Header.Del("Cookie")
		req.Header.Del(httpx.CSRFHeader)
		rec := serve(env.router, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthGateMatrix(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	forged := &http.Cookie{Name: httpx.DefaultSessionCookie, Value: "eyJhbGciOiJIUzI1NiJ9.e30.forged"}

	cases := []struct {
		name    string
		session *http.Cookie
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"forged token", forged, http.StatusUnauthorized},
		{"user role", env.sessionFor(t, domain.RoleUser), http.StatusForbidden},
		{"admin role", env.sessionFor(t, domain.RoleAdmin), http.StatusOK},
		{"root role", env.sessionFor(t, domain.RoleRoot), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tc.session != nil {
				cookies = append(cookies, tc.session)
			}
			rec := serve(env.router, request(http.MethodGet, "/api/admin/contacts", "", cookies...))
			require.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("csrf runs before the role gate", func(t *testing.T) {
		req := request(http.MethodDelete, "/api/admin/reviews/missing", "", env.sessionFor(t, domain.RoleAdmin))
		req.Header.Del(httpx.CSRFHeader)
		rec := serve(env.router, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"message":"invalid csrf token"}`, rec.Body.String())

		rec = serve(env.router, request(http.MethodDelete, "/api/admin/reviews/missing", ""))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestIntakeAndAdminListings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.sessionFor(t, domain.RoleAdmin)

	rec := serve(env.router, request(http.MethodPost, "/api/contact",
		`{"name":"Ana Pérez","email":"ana@example.com","phone":"099 111 222","message":"Necesito asesoramiento laboral.","acceptPrivacy":true}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var created lexsdk.CreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.OK)
	require.NotEmpty(t, created.ID)

	rec = serve(env.router, request(http.MethodPost, "/api/contact", `{"name":"","email":"ana@example.com"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"name: required"}`, rec.Body.String())

	report := `{"tipo":"defensa-penal","pais":"Uruguay","departamento":"Montevideo","ciudad":"Pocitos",` +
		`"costoUyu":%d,"idType":"ci","idNumber":"1.234.567-8","email":"ana@example.com","celular":"099111222",` +
		`"nombre":"Ana","apellido":"Pérez","details":"Detalle","acceptPrivacy":true}`

	rec = serve(env.router, request(http.MethodPost, "/api/reports", fmt.Sprintf(report, 1)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"invalid cost"}`, rec.Body.String())

	rec = serve(env.router, request(http.MethodPost, "/api/reports", fmt.Sprintf(report, 9900)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(env.router, request(http.MethodGet, "/api/admin/contacts", "", admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var contacts lexsdk.AdminContactsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	require.Len(t, contacts.Items, 1)
	require.Equal(t, "Ana Pérez", contacts.Items[0].Name)
	require.Equal(t, "Montevideo", contacts.Items[0].Department)
	require.Equal(t, "consulta-general", contacts.Items[0].Subject)

	rec = serve(env.router, request(http.MethodGet, "/api/admin/reports", "", admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var reports lexsdk.AdminReportsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reports))
	require.Len(t, reports.Items, 1)
	require.Equal(t, "12345678", reports.Items[0].IDNumber)
	require.EqualValues(t, 9900, reports.Items[0].CostUYU)
	require.Equal(t, "Detalle", reports.Items[0].Details)

	rec = serve(env.router, request(http.MethodGet, "/api/services", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var services lexsdk.ServicesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	require.NotEmpty(t, services.Items)
	for _, s := range services.Items {
		require.Equal(t, s.BaseCostUYU+s.LegalFeeUYU, s.TotalUYU)
	}
}

func TestReviewModeration(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)
	ctx := context.Background()

	id, err := client.SubmitReview(ctx, lexsdk.ReviewRequest{
		Name: "Carlos", Rating: 5, Message: "Muy buena atención, recomendable.", AcceptPrivacy: true,
	})
	require.NoError(t, err)

	_, err = client.SubmitReview(ctx, lexsdk.ReviewRequest{Name: "Carlos", Rating: 9, Message: "Muy buena atención.", AcceptPrivacy: true})
	require.Equal(t, http.StatusBadRequest, lexsdk.StatusCode(err))

	public, err := client.ListReviews(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, public, "pending reviews are not public")

	_, err = client.AdminListReviews(ctx, "", 0)
	require.Equal(t, http.StatusUnauthorized, lexsdk.StatusCode(err))

	_, err = client.Login(ctx, lexsdk.LoginRequest{Email: rootEmail, Password: rootPassword})
	require.NoError(t, err)

	pending, err := client.AdminListReviews(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "pending", pending[0].Status)

	_, err = client.AdminListReviews(ctx, "archived", 0)
	require.Equal(t, http.StatusBadRequest, lexsdk.StatusCode(err))

	require.NoError(t, client.ApproveReview(ctx, id))

	public, err = client.ListReviews(ctx, 0)
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, id, public[0].ID)
	require.Empty(t, public[0].Status)

	require.NoError(t, client.DeleteReview(ctx, id))
	err = client.DeleteReview(ctx, id)
	require.Equal(t, http.StatusNotFound, lexsdk.StatusCode(err))
	err = client.RejectReview(ctx, "missing")
	require.Equal(t, http.StatusNotFound, lexsdk.StatusCode(err))
}

func TestAnalytics(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.sessionFor(t, domain.RoleAdmin)

	for _, p := range []string{"/", "/servicios", "/servicios"} {
		rec := serve(env.router, request(http.MethodPost, "/api/analytics/pageview", `{"path":"`+p+`"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	}

	rec := serve(env.router, request(http.MethodPost, "/api/analytics/pageview", `{"path":""}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(env.router, request(http.MethodGet, "/api/admin/analytics/overview", "", admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var overview lexsdk.AnalyticsOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	require.Equal(t, 3, overview.Total)
	require.Equal(t, lexsdk.PathCount{Path: "/servicios", Count: 2}, overview.TopPaths[0])

	rec = serve(env.router, request(http.MethodGet, "/api/admin/analytics/recent?limit=2", "", admin))
	require.Equal(t, http.StatusOK, rec.Code)
	var recent lexsdk.PageViewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	require.Len(t, recent.Items, 2)
}

func TestQueryBounds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.sessionFor(t, domain.RoleAdmin)

	cases := []struct {
		path string
		want int
	}{
		{"/api/reviews?limit=0", http.StatusBadRequest},
		{"/api/reviews?limit=51", http.StatusBadRequest},
		{"/api/reviews?limit=abc", http.StatusBadRequest},
		{"/api/reviews?limit=50", http.StatusOK},
		{"/api/admin/analytics/overview?days=366", http.StatusBadRequest},
		{"/api/admin/analytics/overview?days=365", http.StatusOK},
		{"/api/admin/analytics/recent?limit=501", http.StatusBadRequest},
		{"/api/admin/reviews?limit=500&status=approved", http.StatusOK},
	}
	for _, tc := range cases {
		rec := serve(env.router, request(http.MethodGet, tc.path, "", admin))
		require.Equal(t, tc.want, rec.Code, tc.path)
	}
}

func TestUploadRoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)
	ctx := context.Background()

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	_, err := client.UploadImage(ctx, "logo.png", "image/png", bytes.NewReader(png))
	require.Equal(t, http.StatusUnauthorized, lexsdk.StatusCode(err))

	_, err = client.Login(ctx, lexsdk.LoginRequest{Email: rootEmail, Password: rootPassword})
	require.NoError(t, err)

	_, err = client.UploadImage(ctx, "notes.txt", "text/plain", bytes.NewReader([]byte("hello")))
	require.Equal(t, http.StatusBadRequest, lexsdk.StatusCode(err))

	url, err := client.UploadImage(ctx, "logo.png", "image/png", bytes.NewReader(png))
	require.NoError(t, err)
	require.Regexp(t, `^/uploads/[0-9a-f]{32}\.png$`, url)

	resp, err := client.HTTPClient.Get(client.BaseURL + url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	missing, err := client.HTTPClient.Get(client.BaseURL + "/uploads/nope.png")
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestHealthProbesAndHeaders(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	for _, path := range []string{"/livez", "/readyz"} {
		rec := serve(env.router, request(http.MethodGet, path, ""))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var health lexsdk.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		require.Equal(t, "ok", health.Status)
		require.Equal(t, "test", health.Version)
	}

	rec := serve(env.router, request(http.MethodGet, "/api/health", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	require.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
	require.Contains(t, rec.Header().Get("Content-Security-Policy"), "object-src 'none'")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	require.NoError(t, env.store.Close())
	rec = serve(env.router, request(http.MethodGet, "/readyz", ""))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	big := `{"path":"/` + string(bytes.Repeat([]byte("a"), MaxJSONBody)) + `"}`

	rec := serve(env.router, request(http.MethodPost, "/api/analytics/pageview", big))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	body := `{"email":"` + adminEmail + `","password":"wrong-password"}`

	for i := range 10 {
		rec := serve(env.router, request(http.MethodPost, "/api/auth/login", body))
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := serve(env.router, request(http.MethodPost, "/api/auth/login", body))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "10;w=60", rec.Header().Get("RateLimit-Policy"))

	// Other routes are still reachable from the same address.
	rec = serve(env.router, request(http.MethodGet, "/api/auth/me", ""))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := serve(env.router, request(http.MethodGet, "/swagger/doc.json", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.NotEmpty(t, doc.Info.Title)
	require.Contains(t, doc.Paths, "/api/auth/login")
}
