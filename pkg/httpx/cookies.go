package httpx

import (
	"net/http"
	"strings"
	"time"
)

// Default cookie names.
const (
	DefaultSessionCookie = "auth"
	DefaultCSRFCookie    = "csrf"
)

// CookiePolicy decides the attributes of the session and CSRF cookies.
//
// In production the session cookie is sent cross-site (the web app and the
// API live on different hosts), so it needs SameSite=None; Secure and is
// Partitioned for browsers that block third-party cookies. Outside
// production it stays SameSite=Strict so plain http://localhost works.
type CookiePolicy struct {
	Production  bool
	SessionName string
	CSRFName    string
}

// NewCookiePolicy builds a policy for the named deployment environment.
// "prod" and "production" are treated as production.
func NewCookiePolicy(env string) CookiePolicy {
	return CookiePolicy{
		Production:  IsProductionEnv(env),
		SessionName: DefaultSessionCookie,
		CSRFName:    DefaultCSRFCookie,
	}
}

// IsProductionEnv reports whether env names a production deployment.
func IsProductionEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// SessionCookie returns the cookie carrying a session token for ttl.
func (p CookiePolicy) SessionCookie(token string, ttl time.Duration) *http.Cookie {
	c := p.sessionBase()
	c.Value = token
	c.MaxAge = int(ttl / time.Second)
	return c
}

// ClearSessionCookie returns a cookie that deletes the session cookie. It
// carries the same attributes as SessionCookie, otherwise browsers keep the
// partitioned original.
func (p CookiePolicy) ClearSessionCookie() *http.Cookie {
	c := p.sessionBase()
	c.MaxAge = -1 // Max-Age=0 on the wire
	return c
}

func (p CookiePolicy) sessionBase() *http.Cookie {
	c := &http.Cookie{
		Name:     p.SessionName,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if p.Production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
		c.Partitioned = true
	}
	return c
}

// CSRFCookie returns the double-submit cookie. It is readable by script so
// the web app can echo it in the X-CSRF-Token header.
func (p CookiePolicy) CSRFCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     p.CSRFName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteStrictMode,
		Secure:   p.Production,
	}
}
