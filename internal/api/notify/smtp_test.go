package notify

import (
	"bytes"
	"context"
	"errors"
	"net"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func testConfig() SMTPConfig {
	return SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "mailer",
		Pass: "secret",
		From: "web@example.com",
		To:   "estudio@example.com",
	}
}

func render(t *testing.T, m *mail.Msg) string {
	t.Helper()
	var b bytes.Buffer
	_, err := m.WriteTo(&b)
	require.NoError(t, err)
	return b.String()
}

func TestSMTP_DisabledWhenIncomplete(t *testing.T) {
	for _, mutate := range []func(*SMTPConfig){
		func(c *SMTPConfig) { c.Host = "" },
		func(c *SMTPConfig) { c.User = "" },
		func(c *SMTPConfig) { c.Pass = "" },
		func(c *SMTPConfig) { c.From = "" },
		func(c *SMTPConfig) { c.To = "" },
	} {
		cfg := testConfig()
		mutate(&cfg)

		s := NewSMTP(cfg)
		s.send = func(context.Context, *mail.Client, *mail.Msg) error {
			t.Fatal("send must not be called")
			return nil
		}
		require.ErrorIs(t, s.Notify(context.Background(), Message{Subject: "x"}), ErrDisabled)
	}
}

func TestSMTP_Notify(t *testing.T) {
	s := NewSMTP(testConfig())
	s.Now = func() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }

	var (
		gotDeadline bool
		gotMsg      string
	)
	s.send = func(ctx context.Context, _ *mail.Client, m *mail.Msg) error {
		_, gotDeadline = ctx.Deadline()
		gotMsg = render(t, m)
		return nil
	}

	err := s.Notify(context.Background(), Message{
		Subject: "Nuevo contacto: consulta-general",
		Text:    "Nombre: Ana\nEmail: ana@example.com",
	})
	require.NoError(t, err)

	require.True(t, gotDeadline, "sends are bounded by the timeout")
	require.Contains(t, gotMsg, "Subject: Nuevo contacto: consulta-general\r\n")
	require.Contains(t, gotMsg, "web@example.com")
	require.Contains(t, gotMsg, "estudio@example.com")
	require.Contains(t, gotMsg, "text/plain")
	require.Contains(t, gotMsg, "Nombre: Ana")
}

func TestSMTP_EncodesNonASCIISubject(t *testing.T) {
	s := NewSMTP(testConfig())
	m, err := s.build(Message{Subject: "Nueva reseña pendiente de aprobación", Text: "x"})
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(render(t, m)), "subject: =?utf-8?q?")
}

func TestSMTP_SendError(t *testing.T) {
	s := NewSMTP(testConfig())
	s.send = func(context.Context, *mail.Client, *mail.Msg) error {
		return errors.New("535 authentication failed")
	}

	err := s.Notify(context.Background(), Message{Subject: "x", Text: "y"})
	require.ErrorContains(t, err, "535 authentication failed")
	require.NotErrorIs(t, err, ErrDisabled)
}

// silentRelay accepts connections and never greets.
func silentRelay(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return ln.Addr().(*net.TCPAddr).Port
}

func TestSMTP_SilentRelayTimesOut(t *testing.T) {
	port := silentRelay(t)
	cfg := testConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port

	s := NewSMTP(cfg)
	s.Timeout = 200 * time.Millisecond

	before := runtime.NumGoroutine()
	for range 3 {
		start := time.Now()
		err := s.Notify(context.Background(), Message{Subject: "x", Text: "y"})
		require.Error(t, err)
		require.Less(t, time.Since(start), 2*time.Second)
	}

	// No send outlives its call.
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 20*time.Millisecond)
}

func TestNewSMTP_DefaultPort(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0
	require.Equal(t, 587, NewSMTP(cfg).Config.Port)
}

func TestNoop(t *testing.T) {
	require.ErrorIs(t, Noop{}.Notify(context.Background(), Message{}), ErrDisabled)
}
