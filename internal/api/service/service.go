// Package service holds the business operations behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// SideEffect is the outcome of a best-effort step: an audit row, a
// notification email, an optional metadata update. A failed side effect is
// logged and reported to the caller but never fails the operation.
type SideEffect struct {
	Name string
	Err  error
}

// OK reports whether the step succeeded.
func (s SideEffect) OK() bool { return s.Err == nil }

// Skipped reports whether the step did not run because it is not configured.
func (s SideEffect) Skipped() bool { return errors.Is(s.Err, notify.ErrDisabled) }

func bestEffort(ctx context.Context, name string, err error) SideEffect {
	se := SideEffect{Name: name, Err: err}
	switch {
	case err == nil:
	case se.Skipped():
		slogx.FromContext(ctx).Debug("side effect skipped", slog.String("step", name))
	default:
		slogx.FromContext(ctx).Warn("side effect failed",
			slog.String("step", name),
			slog.Any("error", err),
		)
	}
	return se
}
