package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/wneessen/go-mail"
)

// implicitTLSPort is the SMTP submission port that expects TLS from the first byte.
const implicitTLSPort = 465

const defaultSMTPTimeout = 15 * time.Second

// SMTPConfig holds the mail relay settings. Every field except Port is
// required for delivery.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// Enabled reports whether enough is configured to attempt delivery.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Pass != "" && c.From != "" && c.To != ""
}

// SMTP sends notifications through an authenticated relay. Port 465 uses
// implicit TLS; other ports use STARTTLS when the server offers it.
type SMTP struct {
	Config  SMTPConfig
	Timeout time.Duration
	Now     func() time.Time

	// send is swapped in tests.
	send func(ctx context.Context, c *mail.Client, m *mail.Msg) error
}

func NewSMTP(cfg SMTPConfig) *SMTP {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTP{Config: cfg, Timeout: defaultSMTPTimeout, Now: time.Now}
}

func (s *SMTP) timeout() time.Duration {
	if s.Timeout <= 0 {
		return defaultSMTPTimeout
	}
	return s.Timeout
}

// Notify delivers msg and returns once the relay accepted it, the timeout
// passed or ctx ended. Nothing keeps running after it returns.
func (s *SMTP) Notify(ctx context.Context, msg Message) error {
	if !s.Config.Enabled() {
		return ErrDisabled
	}

	m, err := s.build(msg)
	if err != nil {
		return fmt.Errorf("notify: build message: %w", err)
	}
	c, err := s.client()
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	send := s.send
	if send == nil {
		send = func(ctx context.Context, c *mail.Client, m *mail.Msg) error {
			return c.DialAndSendWithContext(ctx, m)
		}
	}
	if err := send(ctx, c, m); err != nil {
		return fmt.Errorf("notify: smtp send: %w", err)
	}
	return nil
}

func (s *SMTP) client() (*mail.Client, error) {
	return mail.NewClient(s.Config.Host,
		mail.WithPort(s.Config.Port),
		mail.WithTimeout(s.timeout()),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.Config.User),
		mail.WithPassword(s.Config.Pass),
		mail.WithDialContextFunc(s.dial),
	)
}

// dial opens the relay connection with a deadline covering the whole
// exchange, so a server that never greets cannot stall a send. Port 465
// gets implicit TLS.
func (s *SMTP) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	var (
		conn net.Conn
		err  error
	)
	nd := &net.Dialer{Timeout: s.timeout()}
	if s.Config.Port == implicitTLSPort {
		td := &tls.Dialer{
			NetDialer: nd,
			Config:    &tls.Config{ServerName: s.Config.Host, MinVersion: tls.VersionTLS12},
		}
		conn, err = td.DialContext(ctx, network, addr)
	} else {
		conn, err = nd.DialContext(ctx, network, addr)
	}
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(s.timeout())
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// build renders a UTF-8 plain-text message.
func (s *SMTP) build(msg Message) (*mail.Msg, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	m := mail.NewMsg(mail.WithCharset(mail.CharsetUTF8))
	if err := m.From(s.Config.From); err != nil {
		return nil, err
	}
	if err := m.To(s.Config.To); err != nil {
		return nil, err
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(now())
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	return m, nil
}
