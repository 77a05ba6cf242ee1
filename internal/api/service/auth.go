package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// ErrInvalidCredentials covers an unknown email, a wrong password and a
// phone mismatch alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	minPasswordLen = 8
	maxPasswordLen = 200
	maxPhoneLen    = 40
)

type LoginRequest struct {
	Email     string
	Password  string
	Phone     string
	IP        string
	UserAgent string
}

type LoginResult struct {
	Token    string
	Identity jwtx.Identity
	TTL      time.Duration
	Audit    SideEffect
}

// Account is a staff login supplied by configuration.
type Account struct {
	Email    string
	Phone    string
	Password string
}

type AuthService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
	Issuer *jwtx.SessionIssuer
	Now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// NormalizePhone keeps only the digits of a phone number.
func NormalizePhone(phone string) string {
	return digitsOnly(phone)
}

func validateLogin(req LoginRequest) error {
	if err := checkEmail("email", req.Email); err != nil {
		return err
	}
	if err := checkLen("password", req.Password, minPasswordLen, maxPasswordLen); err != nil {
		return err
	}
	if err := checkOptionalLen("phone", strings.TrimSpace(req.Phone), 0, maxPhoneLen); err != nil {
		return err
	}
	return nil
}

// Login checks the credentials and issues a session token. Every attempt,
// including malformed ones, is recorded in the audit log on a best-effort
// basis.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	l := slogx.FromContext(ctx).With(slog.String("email_fp", emailFingerprint(req.Email)))

	if err := validateLogin(req); err != nil {
		s.AuditAttempt(ctx, req.Email, req.IP, req.UserAgent, false)
		return LoginResult{}, err
	}

	fail := func(reason string) (LoginResult, error) {
		l.Info("login rejected", slog.String("reason", reason))
		s.AuditAttempt(ctx, req.Email, req.IP, req.UserAgent, false)
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		// Spend the same hashing work as a real check.
		_ = s.Hasher.Verify(req.Password, s.placeholderHash())
		return fail("unknown email")
	}
	if err != nil {
		l.Error("failed to load user", slog.Any("error", err))
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("stored password hash unreadable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return fail("password mismatch")
	}

	if user.Role.RequiresPhone() {
		expected := NormalizePhone(user.Phone)
		if expected == "" || expected != NormalizePhone(req.Phone) {
			return fail("phone mismatch")
		}
	}

	id := jwtx.Identity{Subject: user.ID, Email: user.Email, Role: string(user.Role)}
	token, err := s.Issuer.Issue(id)
	if err != nil {
		l.Error("failed to issue session token", slog.Any("error", err))
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	audit := s.AuditAttempt(ctx, req.Email, req.IP, req.UserAgent, true)
	l.Info("login succeeded", slog.String("user_id", user.ID), slog.String("role", id.Role))

	return LoginResult{Token: token, Identity: id, TTL: s.Issuer.TTL(), Audit: audit}, nil
}

// AuditAttempt records a login attempt. Failures are logged and returned
// as a SideEffect, never as an error.
func (s *AuthService) AuditAttempt(ctx context.Context, email, ip, userAgent string, success bool) SideEffect {
	err := s.Store.AuthAudits().CreateAuthAudit(ctx, domain.AuthAudit{
		ID:        idx.New().String(),
		Email:     truncate(strings.TrimSpace(email), maxEmailLen),
		IP:        ip,
		UserAgent: truncate(userAgent, 512),
		Success:   success,
		CreatedAt: s.now(),
	})
	return bestEffort(ctx, "auth_audit", err)
}

// EnsureConfiguredUsers creates or refreshes the root and admin accounts
// given by configuration. Accounts missing a required value are skipped.
// The root account's password and role are reset on every call; an existing
// admin only gains a phone number when it has none.
func (s *AuthService) EnsureConfiguredUsers(ctx context.Context, root Account, admins ...Account) error {
	l := slogx.FromContext(ctx)
	var errs []error

	rootEmail := strings.TrimSpace(root.Email)
	if rootEmail != "" && root.Password != "" {
		if err := s.upsertRoot(ctx, rootEmail, root.Password); err != nil {
			errs = append(errs, fmt.Errorf("root user: %w", err))
		} else {
			l.Info("root user ensured", slog.String("email_fp", emailFingerprint(rootEmail)))
		}
	}

	for i, a := range admins {
		email := strings.TrimSpace(a.Email)
		phone := NormalizePhone(a.Phone)
		if email == "" || phone == "" || a.Password == "" {
			continue
		}
		if err := s.ensureAdmin(ctx, email, phone, a.Password); err != nil {
			errs = append(errs, fmt.Errorf("admin user %d: %w", i+1, err))
			continue
		}
		l.Info("admin user ensured", slog.String("email_fp", emailFingerprint(email)))
	}

	return errors.Join(errs...)
}

func (s *AuthService) upsertRoot(ctx context.Context, email, password string) error {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return err
	}
	now := s.now()
	return s.Store.Users().UpsertRootUser(ctx, domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Phone:        "",
		PasswordHash: hash,
		Role:         domain.RoleRoot,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *AuthService) ensureAdmin(ctx context.Context, email, phone, password string) error {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return err
	}
	now := s.now()
	return s.Store.Users().EnsureStaffUser(ctx, domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// placeholderHash is verified against when the email is unknown.
func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash(idx.New().String())
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// emailFingerprint identifies an email in logs without revealing it.
func emailFingerprint(email string) string {
	fp := cryptox.Fingerprint(strings.ToLower(strings.TrimSpace(email)))
	return fp[:12]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
