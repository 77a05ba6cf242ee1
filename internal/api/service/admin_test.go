package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

func TestAdminService_ListContacts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	cipher := newTestCipher(t)
	intake := &IntakeService{Store: s, Cipher: cipher, Now: fixedClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))}

	_, err := intake.SubmitContact(ctx, validContact())
	require.NoError(t, err)

	// A row sealed under another key, or corrupted, must not break the listing.
	require.NoError(t, s.Contacts().CreateContactMessage(ctx, domain.ContactMessage{
		ID:           "01JZZZZZZZZZZZZZZZZZZZZZZZ",
		Subject:      "consulta-general",
		PIIEncrypted: "not.a.blob",
		CreatedAt:    time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
	}))

	svc := &AdminService{Store: s, Cipher: cipher}
	items, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.False(t, items[0].Decrypted)
	require.Equal(t, domain.ContactPII{}, items[0].PII)

	require.True(t, items[1].Decrypted)
	require.Equal(t, "ana@example.com", items[1].PII.Email)
}

func TestAdminService_ListReports(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	cipher := newTestCipher(t)
	intake := &IntakeService{Store: s, Cipher: cipher}

	_, err := intake.SubmitReport(ctx, validReport())
	require.NoError(t, err)

	svc := &AdminService{Store: s, Cipher: cipher}
	items, err := svc.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, items[0].Decrypted)
	require.Equal(t, "Juan", items[0].PII.FirstName)
	require.Equal(t, "defensa-penal", items[0].ReportType)

	// Same rows, different key.
	other, err := cipherWithFill(0x11)
	require.NoError(t, err)
	svc.Cipher = other
	items, err = svc.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, items[0].Decrypted)
	require.Empty(t, items[0].PII.FirstName)
}
