package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
)

func validContact() ContactRequest {
	return ContactRequest{
		Name:          "Ana Pérez",
		Email:         "ana@example.com",
		Phone:         "099123456",
		Message:       "Necesito asesoramiento laboral.",
		AcceptPrivacy: true,
	}
}

func validReport() ReportRequest {
	return ReportRequest{
		Type:          "defensa-penal",
		Country:       "Uruguay",
		Department:    "Canelones",
		City:          "Las Piedras",
		CostUYU:       domain.DefaultServiceFeeUYU,
		IDType:        "CI",
		IDNumber:      "1.234.567-8",
		Email:         "juan@example.com",
		Mobile:        "099 765 432",
		FirstName:     "Juan",
		LastName:      "Rodríguez",
		Details:       "Hechos ocurridos el 3 de marzo.",
		AcceptPrivacy: true,
	}
}

func TestIntakeService_SubmitContact(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	n := &recordingNotifier{}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &IntakeService{Store: s, Cipher: newTestCipher(t), Notifier: n, Now: fixedClock(now)}

	rec, err := svc.SubmitContact(ctx, validContact())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.True(t, rec.Notification.OK())

	msgs, err := s.Contacts().ListContactMessages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "consulta-general", msgs[0].Subject)
	require.NotContains(t, msgs[0].PIIEncrypted, "ana@example.com")

	var pii domain.ContactPII
	require.NoError(t, svc.Cipher.Decrypt(msgs[0].PIIEncrypted, &pii))
	require.Equal(t, "Ana Pérez", pii.Name)
	require.Equal(t, "Uruguay", pii.Country)
	require.Equal(t, "Montevideo", pii.Department)

	sent := n.messages()
	require.Len(t, sent, 1)
	require.Equal(t, "Nuevo contacto: consulta-general", sent[0].Subject)
	require.Equal(t, "Nombre: Ana Pérez\nEmail: ana@example.com\nTeléfono: 099123456\n"+
		"País: Uruguay\nDepartamento: Montevideo\nAsunto: consulta-general\n\n"+
		"Necesito asesoramiento laboral.", sent[0].Text)
}

func TestIntakeService_SubmitContactNotificationFailure(t *testing.T) {
	s := newTestStore(t)
	svc := &IntakeService{Store: s, Cipher: newTestCipher(t), Notifier: &recordingNotifier{err: errBoom}}

	rec, err := svc.SubmitContact(context.Background(), validContact())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.ErrorIs(t, rec.Notification.Err, errBoom)

	// No notifier configured at all.
	svc.Notifier = nil
	rec, err = svc.SubmitContact(context.Background(), validContact())
	require.NoError(t, err)
	require.True(t, rec.Notification.Skipped())
	require.ErrorIs(t, rec.Notification.Err, notify.ErrDisabled)
}

func TestIntakeService_SubmitContactValidation(t *testing.T) {
	svc := &IntakeService{Store: newTestStore(t), Cipher: newTestCipher(t)}

	cases := map[string]func(*ContactRequest){
		"name":          func(r *ContactRequest) { r.Name = "  " },
		"email":         func(r *ContactRequest) { r.Email = "ana@" },
		"phone":         func(r *ContactRequest) { r.Phone = "123" },
		"message":       func(r *ContactRequest) { r.Message = "corto" },
		"subcategoria":  func(r *ContactRequest) { r.Subcategory = strings.Repeat("x", 81) },
		"acceptPrivacy": func(r *ContactRequest) { r.AcceptPrivacy = false },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validContact()
			mutate(&req)
			_, err := svc.SubmitContact(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, field, verr.Field)
		})
	}
}

func TestIntakeService_SubmitReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	n := &recordingNotifier{}
	svc := &IntakeService{Store: s, Cipher: newTestCipher(t), Notifier: n}

	rec, err := svc.SubmitReport(ctx, validReport())
	require.NoError(t, err)
	require.True(t, rec.Metadata.OK())
	require.True(t, rec.Notification.OK())

	reports, err := s.Reports().ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, "CI", reports[0].IDType)
	require.Equal(t, "Hechos ocurridos el 3 de marzo.", reports[0].Details)
	require.EqualValues(t, 9900, reports[0].CostUYU)

	var pii domain.ReportPII
	require.NoError(t, svc.Cipher.Decrypt(reports[0].PIIEncrypted, &pii))
	require.Equal(t, "12345678", pii.IDNumber)
	require.Equal(t, "099 765 432", pii.Mobile)

	sent := n.messages()
	require.Len(t, sent, 1)
	require.Equal(t, "Nueva denuncia: defensa-penal", sent[0].Subject)
	require.Contains(t, sent[0].Text, "Costo (UYU): 9900\n")
	require.Contains(t, sent[0].Text, "- Nombre: Juan Rodríguez\n")
	require.Contains(t, sent[0].Text, "Detalles:\nHechos ocurridos el 3 de marzo.\n")
}

func TestIntakeService_SubmitReportCost(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IntakeService{Store: s, Cipher: newTestCipher(t)}

	require.NoError(t, s.LegalServices().UpsertLegalService(ctx, domain.LegalService{
		Slug: "defensa-penal", Name: "Defensa penal", BaseCostUYU: 5000, LegalFeeUYU: 9900, Enabled: true,
	}))

	t.Run("mismatch", func(t *testing.T) {
		_, err := svc.SubmitReport(ctx, validReport())
		require.ErrorIs(t, err, ErrInvalidCost)
	})

	t.Run("priced from catalogue", func(t *testing.T) {
		req := validReport()
		req.CostUYU = 14900
		_, err := svc.SubmitReport(ctx, req)
		require.NoError(t, err)
	})

	t.Run("unknown type falls back", func(t *testing.T) {
		req := validReport()
		req.Type = "otro-tramite"
		_, err := svc.SubmitReport(ctx, req)
		require.NoError(t, err)
	})

	t.Run("pricing failure falls back", func(t *testing.T) {
		broken := &IntakeService{
			Store:  failingStore{Store: s, legalServices: brokenLegalServices{}},
			Cipher: svc.Cipher,
		}
		require.Equal(t, domain.DefaultServiceFeeUYU, broken.QuoteReport(ctx, "defensa-penal"))
	})
}

func TestIntakeService_SubmitReportValidation(t *testing.T) {
	svc := &IntakeService{Store: newTestStore(t), Cipher: newTestCipher(t)}

	req := validReport()
	req.IDNumber = "abc"
	_, err := svc.SubmitReport(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "idNumber", verr.Field)
}

func TestIntakeService_ListServices(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IntakeService{Store: s}

	items := svc.ListServices(ctx)
	require.Len(t, items, 8)
	require.Equal(t, "Conflictos civiles", items[0].Name)

	svc.Store = failingStore{Store: s, legalServices: brokenLegalServices{}}
	fallback := svc.ListServices(ctx)
	require.Equal(t, DefaultLegalServices(), fallback)
	for _, item := range fallback {
		require.EqualValues(t, 9900, item.TotalUYU())
	}
}
