package httpx

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// CSRFHeader is the request header that must echo the csrf cookie.
const CSRFHeader = "X-CSRF-Token"

// CSRFGuard implements the double-submit cookie pattern. The token is issued
// once per browser and never rotated; possession of the cookie value in a
// header proves the request was made by script running on an allowed origin.
type CSRFGuard struct {
	Policy CookiePolicy

	newToken func() (string, error)
}

// NewCSRFGuard returns a guard that issues cookies according to policy.
func NewCSRFGuard(policy CookiePolicy) *CSRFGuard {
	return &CSRFGuard{
		Policy:   policy,
		newToken: func() (string, error) { return cryptox.GenerateToken(cryptox.CSRFTokenSize) },
	}
}

// EnsureToken sets a csrf cookie on the response when the request carries
// none. The token is exposed to later handlers through CSRFTokenFromContext.
// A token issued here does not count as present for Verify on the same
// request, since the browser has not sent it yet.
func (g *CSRFGuard) EnsureToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if c, err := r.Cookie(g.Policy.CSRFName); err == nil && c.Value != "" {
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, CtxKeyCSRFToken, c.Value)))
			return
		}

		token, err := g.newToken()
		if err != nil {
			slogx.FromContext(ctx).Error("csrf token generation failed", "err", err)
			WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, g.Policy.CSRFCookie(token))
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, CtxKeyCSRFToken, token)))
	})
}

// Verify rejects state-changing requests whose X-CSRF-Token header does not
// match the csrf cookie the request carried. GET, HEAD and OPTIONS pass.
func (g *CSRFGuard) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		var cookie string
		if c, err := r.Cookie(g.Policy.CSRFName); err == nil {
			cookie = c.Value
		}
		header := r.Header.Get(CSRFHeader)

		if cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			slogx.FromContext(r.Context()).Debug("csrf check failed",
				"has_cookie", cookie != "",
				"has_header", header != "",
			)
			WriteError(w, http.StatusForbidden, "invalid csrf token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
