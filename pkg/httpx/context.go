package httpx

import (
	"context"

	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyIdentity  ctxKey = "identity"
	CtxKeyCSRFToken ctxKey = "csrf_token"
)

// WithIdentity returns ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id jwtx.Identity) context.Context {
	return context.WithValue(ctx, CtxKeyIdentity, id)
}

// IdentityFromContext returns the identity attached by SessionMiddleware.
func IdentityFromContext(ctx context.Context) (jwtx.Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(jwtx.Identity)
	return id, ok
}

// CSRFTokenFromContext returns the token EnsureToken issued on this response,
// or the one the request already carried.
func CSRFTokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyCSRFToken).(string)
	return v
}
