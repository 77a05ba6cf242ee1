package jwtx

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the principal carried inside a session token.
type Identity struct {
	Subject string
	Email   string
	Role    string
}

// Verifier validates a session token and returns the identity it carries.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// SessionIssuer signs and verifies HS256 session tokens under one shared
// secret and one issuer string.
type SessionIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	roles  []string
	now    func() time.Time
}

// SessionOption configures a SessionIssuer.
type SessionOption func(*SessionIssuer)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionIssuer) { s.now = now }
}

// WithRoles restricts the accepted role claim to the given set. Without it
// any non-empty role is accepted.
func WithRoles(roles ...string) SessionOption {
	return func(s *SessionIssuer) { s.roles = slices.Clone(roles) }
}

// NewSessionIssuer returns an issuer for the given secret and issuer string.
// A zero ttl means DefaultSessionTTL.
func NewSessionIssuer(secret []byte, issuer string, ttl time.Duration, opts ...SessionOption) (*SessionIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty session secret")
	}
	if issuer == "" {
		return nil, errors.New("jwtx: empty issuer")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	s := &SessionIssuer{
		secret: slices.Clone(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL reports the lifetime given to issued tokens.
func (s *SessionIssuer) TTL() time.Duration { return s.ttl }

// Issue signs a session token for id.
func (s *SessionIssuer) Issue(id Identity) (string, error) {
	if id.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidClaim)
	}
	if !s.knownRole(id.Role) {
		return "", fmt.Errorf("%w: role %q", ErrInvalidClaim, id.Role)
	}

	claims := NewSessionClaims(id, s.issuer, s.ttl, s.now())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature, issuer, expiry and role of token.
func (s *SessionIssuer) Verify(tokenStr string) (Identity, error) {
	// Time-based claims are checked below against s.now so that a single
	// clock governs expiry.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Identity{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return Identity{}, err
	}
	if err := claims.ValidateExpiryAt(s.now()); err != nil {
		return Identity{}, err
	}
	if claims.Subject == "" || !s.knownRole(claims.Role) {
		return Identity{}, ErrInvalidClaim
	}

	return claims.Identity(), nil
}

func (s *SessionIssuer) knownRole(role string) bool {
	if role == "" {
		return false
	}
	if len(s.roles) == 0 {
		return true
	}
	return slices.Contains(s.roles, role)
}
