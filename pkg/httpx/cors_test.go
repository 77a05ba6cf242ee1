package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestNewCORSConfig_Twins(t *testing.T) {
	c := httpx.NewCORSConfig("https://example.com")
	require.Equal(t, []string{"https://example.com", "https://www.example.com"}, c.AllowedOrigins)

	c = httpx.NewCORSConfig("https://www.example.com/")
	require.Equal(t, []string{"https://www.example.com", "https://example.com"}, c.AllowedOrigins)

	c = httpx.NewCORSConfig("https://example.com", "https://admin.example.com", "https://example.com")
	require.Equal(t, []string{"https://example.com", "https://www.example.com", "https://admin.example.com"}, c.AllowedOrigins)
}

func TestCORSConfig_Validate(t *testing.T) {
	require.NoError(t, httpx.NewCORSConfig("https://example.com").Validate())
	require.ErrorIs(t, httpx.NewCORSConfig("https://example.com", "*").Validate(), httpx.ErrWildcardOrigin)
}

func TestCORSConfig_Allows(t *testing.T) {
	c := httpx.NewCORSConfig("https://example.com")

	require.True(t, c.Allows("https://example.com"))
	require.True(t, c.Allows("https://www.example.com"))
	require.True(t, c.Allows("http://localhost:5173"))
	require.True(t, c.Allows("http://127.0.0.1:3000"))

	require.False(t, c.Allows("https://evil.com"))
	require.False(t, c.Allows("https://example.com.evil.com"))
	require.False(t, c.Allows("https://localhost.evil.com"))
	require.False(t, c.Allows("http://example.com"))

	c.AllowLocalhost = false
	require.False(t, c.Allows("http://localhost:5173"))
}

func TestCORS(t *testing.T) {
	h := httpx.CORS(httpx.NewCORSConfig("https://example.com"))(okHandler())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://www.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "https://www.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("Origin", "https://evil.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-CSRF-Token")
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})

	t.Run("preflight refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "https://evil.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
