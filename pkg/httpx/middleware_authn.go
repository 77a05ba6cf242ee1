package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// SessionMiddleware resolves the session cookie into an identity. It never
// rejects a request: a missing, malformed, expired or forged token simply
// leaves the request anonymous, and the route-level gates decide.
func SessionMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(c.Value)
			if err != nil {
				slogx.FromContext(r.Context()).Debug("session token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := slogx.With(WithIdentity(r.Context(), id), "user_id", id.Subject, "role", id.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
