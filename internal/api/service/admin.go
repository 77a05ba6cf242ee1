package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// AdminListLimit caps the admin contact and report listings.
const AdminListLimit = 200

// ContactView is a contact message with its PII opened. Decrypted is false
// when the blob could not be opened; PII is then empty.
type ContactView struct {
	ID        string
	Subject   string
	CreatedAt time.Time
	PII       domain.ContactPII
	Decrypted bool
}

type ReportView struct {
	domain.Report
	PII       domain.ReportPII
	Decrypted bool
}

// AdminService serves the staff-only listings.
type AdminService struct {
	Store  store.Store
	Cipher *cryptox.PIICipher
}

// ListContacts returns the newest contact messages. A row whose PII cannot
// be decrypted is still listed, with empty PII fields.
func (s *AdminService) ListContacts(ctx context.Context) ([]ContactView, error) {
	msgs, err := s.Store.Contacts().ListContactMessages(ctx, AdminListLimit)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	out := make([]ContactView, 0, len(msgs))
	for _, m := range msgs {
		v := ContactView{ID: m.ID, Subject: m.Subject, CreatedAt: m.CreatedAt}
		if err := s.Cipher.Decrypt(m.PIIEncrypted, &v.PII); err != nil {
			logUndecryptable(ctx, "contact_id", m.ID, err)
			v.PII = domain.ContactPII{}
		} else {
			v.Decrypted = true
		}
		out = append(out, v)
	}
	return out, nil
}

// ListReports returns the newest reports with the same fallback as
// ListContacts.
func (s *AdminService) ListReports(ctx context.Context) ([]ReportView, error) {
	reports, err := s.Store.Reports().ListReports(ctx, AdminListLimit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		v := ReportView{Report: r}
		if err := s.Cipher.Decrypt(r.PIIEncrypted, &v.PII); err != nil {
			logUndecryptable(ctx, "report_id", r.ID, err)
			v.PII = domain.ReportPII{}
		} else {
			v.Decrypted = true
		}
		out = append(out, v)
	}
	return out, nil
}

func logUndecryptable(ctx context.Context, key, id string, err error) {
	slogx.FromContext(ctx).Warn("stored pii could not be decrypted",
		slog.String(key, id),
		slog.Any("error", err),
	)
}
