// Package notify delivers staff notification emails for new intake.
package notify

import (
	"context"
	"errors"
)

// ErrDisabled is returned when the notifier lacks the configuration it needs
// to deliver anything. Callers treat it as a skipped step, not a failure.
var ErrDisabled = errors.New("notify: not configured")

// Message is a plain-text notification for the firm's inbox.
type Message struct {
	Subject string
	Text    string
}

// Notifier delivers staff notifications.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Noop discards every message.
type Noop struct{}

func (Noop) Notify(context.Context, Message) error { return ErrDisabled }
