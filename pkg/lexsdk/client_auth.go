package lexsdk

import (
	"context"
	"net/http"
)

// Login opens a session and returns the signed-in user as /api/auth/me
// reports it. On success the session cookie is stored in the client's jar.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*MeUser, error) {
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, nil); err != nil {
		return nil, err
	}
	me, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}
	return me.User, nil
}

// Logout clears the session cookie.
func (c *SDKClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Me describes the caller's session. It never fails for anonymous callers.
func (c *SDKClient) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
