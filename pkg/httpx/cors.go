package httpx

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// ErrWildcardOrigin is returned when a credentialed CORS allow-list contains
// "*". With cookies in play a wildcard would let any site ride the session.
var ErrWildcardOrigin = errors.New("httpx: wildcard origin not allowed with credentials")

// CORSConfig is a strict, credentialed origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string
	AllowLocalhost bool
	AllowedMethods []string
	AllowedHeaders []string
}

// NewCORSConfig allows webOrigin together with its www / non-www twin, plus
// any extra origins given.
func NewCORSConfig(webOrigin string, extra ...string) CORSConfig {
	var origins []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}

	add(webOrigin)
	if strings.Contains(webOrigin, "://www.") {
		add(strings.Replace(webOrigin, "://www.", "://", 1))
	} else if webOrigin != "" {
		add(strings.Replace(webOrigin, "://", "://www.", 1))
	}
	for _, o := range extra {
		add(o)
	}

	return CORSConfig{
		AllowedOrigins: origins,
		AllowLocalhost: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type", CSRFHeader},
	}
}

// Validate rejects allow-lists that cannot be paired with cookie auth.
func (c CORSConfig) Validate() error {
	if slices.Contains(c.AllowedOrigins, "*") {
		return ErrWildcardOrigin
	}
	return nil
}

// Allows reports whether origin may make credentialed requests.
func (c CORSConfig) Allows(origin string) bool {
	if slices.Contains(c.AllowedOrigins, origin) {
		return true
	}
	if c.AllowLocalhost {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := u.Hostname()
		if host == "localhost" {
			return true
		}
		if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
			return true
		}
	}
	return false
}

// CORS answers preflights and decorates responses for allowed origins.
// Requests from other origins get no CORS headers, and their preflights are
// refused with 403.
func CORS(cfg CORSConfig) Middleware {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")

			preflight := r.Method == http.MethodOptions &&
				r.Header.Get("Access-Control-Request-Method") != ""

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !cfg.Allows(origin) {
				if preflight {
					WriteError(w, http.StatusForbidden, "origin not allowed")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if preflight {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
