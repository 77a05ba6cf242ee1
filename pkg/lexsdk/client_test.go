package lexsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeAPI issues a csrf cookie on /api/health and rejects state-changing
// requests whose header does not echo it.
func fakeAPI(t *testing.T) (*httptest.Server, *requestLog) {
	t.Helper()

	seen := &requestLog{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		seen.add(r.Method + " " + r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: CSRFCookieName, Value: "tok123", Path: "/"})
		_, _ = io.WriteString(w, `{"ok":true}`)
	})
	mux.HandleFunc("POST /api/contact", func(w http.ResponseWriter, r *http.Request) {
		seen.add(r.Method + " " + r.URL.Path)
		if r.Header.Get(CSRFHeaderName) != "tok123" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"message":"invalid csrf token"}`)
			return
		}
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"name: required"}`)
			return
		}
		_, _ = io.WriteString(w, `{"ok":true,"id":"c1"}`)
	})
	mux.HandleFunc("GET /api/reviews", func(w http.ResponseWriter, r *http.Request) {
		seen.add(r.Method + " " + r.URL.RequestURI())
		_, _ = io.WriteString(w, `{"items":[{"id":"r1","name":"Ana","rating":5,"message":"Excelente atención","createdAt":"2026-05-01T10:00:00Z"}]}`)
	})
	mux.HandleFunc("GET /boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, seen
}

type requestLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *requestLog) add(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func TestSDKClient_PrimesCSRFBeforeFirstWrite(t *testing.T) {
	t.Parallel()

	srv, seen := fakeAPI(t)
	client, err := NewSDKClient(srv.URL + "/")
	require.NoError(t, err)
	require.Equal(t, srv.URL, client.BaseURL)
	require.Empty(t, client.CSRFToken())

	id, err := client.SubmitContact(context.Background(), ContactRequest{
		Name: "Ana", Email: "ana@example.com", Message: "Necesito asesoramiento", AcceptPrivacy: true,
	})
	require.NoError(t, err)
	require.Equal(t, "c1", id)
	require.Equal(t, "tok123", client.CSRFToken())
	require.Equal(t, []string{"GET /api/health", "POST /api/contact"}, seen.all())

	// Second write reuses the cookie.
	_, err = client.SubmitContact(context.Background(), ContactRequest{Name: "Ana"})
	require.NoError(t, err)
	require.Len(t, seen.all(), 3)
}

func TestSDKClient_APIError(t *testing.T) {
	t.Parallel()

	srv, _ := fakeAPI(t)
	client, err := NewSDKClient(srv.URL)
	require.NoError(t, err)

	_, err = client.SubmitContact(context.Background(), ContactRequest{})
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, StatusCode(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "name: required", apiErr.Message)

	t.Run("non-json body falls back to status text", func(t *testing.T) {
		err := client.doJSON(context.Background(), http.MethodGet, "/boom", nil, nil)
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
		require.True(t, strings.HasPrefix(err.Error(), "lexdesk: 502"))
	})

	require.Zero(t, StatusCode(io.EOF))
}

func TestSDKClient_ListReviews(t *testing.T) {
	t.Parallel()

	srv, seen := fakeAPI(t)
	client, err := NewSDKClient(srv.URL)
	require.NoError(t, err)

	items, err := client.ListReviews(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Ana", items[0].Name)
	require.Equal(t, 5, items[0].Rating)
	require.Equal(t, []string{"GET /api/reviews?limit=3"}, seen.all())
}

func TestReviewPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/api/admin/reviews/abc/approve", reviewPath("abc", "/approve"))
	require.Equal(t, "/api/admin/reviews/a%2Fb", reviewPath("a/b", ""))
}
