package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

// SessionHandler handles the cookie session endpoints.
type SessionHandler struct {
	AuthService *service.AuthService
	Cookies     httpx.CookiePolicy
	// ClientIP is recorded with every login attempt.
	ClientIP httpx.KeyExtractor
}

// HandleMe handles GET /api/auth/me
//
//	@Summary		Current session
//	@Description	Describes the caller's session. Anonymous callers get authenticated=false, never an error.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	lexsdk.MeResponse
//	@Router			/api/auth/me [get].
func (h *SessionHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, lexsdk.MeResponse{Authenticated: false})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lexsdk.MeResponse{
		Authenticated: true,
		User:          &lexsdk.MeUser{Email: id.Email, Role: id.Role},
	})
}

// HandleLogin handles POST /api/auth/login
//
//	@Summary		Log in
//	@Description	Checks email, password and (for non-root staff) the phone on record, then sets the session cookie.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	lexsdk.OKResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"invalid body"
//	@Failure		401		{object}	lexsdk.ErrorResponse	"invalid credentials"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Failure		429		{object}	lexsdk.ErrorResponse	"rate limited"
//	@Router			/api/auth/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ip := h.ClientIP(r)
	ua := r.UserAgent()

	var req lexsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.AuthService.AuditAttempt(ctx, "", ip, ua, false)
		httpx.WriteDecodeError(w, err)
		return
	}

	res, err := h.AuthService.Login(ctx, service.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		IP:        ip,
		UserAgent: ua,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "invalid body")
		return
	default:
		writeServiceError(w, r, "login", err)
		return
	}

	http.SetCookie(w, h.Cookies.SessionCookie(res.Token, res.TTL))
	httpx.WriteOK(w)
}

// HandleLogout handles POST /api/auth/logout
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Tokens are stateless, so a copied token stays valid until it expires.
//	@Tags			Session
//	@Produce		json
//	@Security		CSRFToken
//	@Success		200	{object}	lexsdk.OKResponse
//	@Failure		403	{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Router			/api/auth/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Cookies.ClearSessionCookie())
	httpx.WriteOK(w)
}
