package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// ErrInvalidCost is returned when a report's quoted cost does not match the
// server-side price.
var ErrInvalidCost = errors.New("invalid cost")

const (
	defaultCountry    = "Uruguay"
	defaultDepartment = "Montevideo"
	defaultSubject    = "consulta-general"
)

type ContactRequest struct {
	Name              string
	Email             string
	Phone             string
	Country           string
	Department        string
	Subject           string
	Subcategory       string
	SubcategoryDetail string
	Message           string
	AcceptPrivacy     bool
}

type ReportRequest struct {
	Type              string
	Country           string
	Department        string
	City              string
	CostUYU           int64
	IDType            string
	IDNumber          string
	Email             string
	Mobile            string
	FirstName         string
	LastName          string
	Category          string
	Subcategory       string
	SubcategoryDetail string
	Details           string
	AcceptPrivacy     bool
}

// Receipt is returned for an accepted submission.
type Receipt struct {
	ID           string
	Notification SideEffect
	Metadata     SideEffect
}

// IntakeService accepts public contact and report submissions. Identifying
// details are sealed with the PII cipher before they reach the store.
type IntakeService struct {
	Store    store.Store
	Cipher   *cryptox.PIICipher
	Notifier notify.Notifier
	Now      func() time.Time
}

func (s *IntakeService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *IntakeService) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Noop{}
	}
	return s.Notifier
}

func normalizeContact(req ContactRequest) (ContactRequest, error) {
	req.Name = clean(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Country = orDefault(clean(req.Country), defaultCountry)
	req.Department = orDefault(clean(req.Department), defaultDepartment)
	req.Subject = orDefault(clean(req.Subject), defaultSubject)
	req.Subcategory = clean(req.Subcategory)
	req.SubcategoryDetail = clean(req.SubcategoryDetail)
	req.Message = clean(req.Message)

	checks := []error{
		checkLen("name", req.Name, 1, 160),
		checkEmail("email", req.Email),
		checkOptionalLen("phone", req.Phone, 6, 40),
		checkLen("pais", req.Country, 1, 80),
		checkLen("departamento", req.Department, 1, 80),
		checkLen("subject", req.Subject, 1, 120),
		checkOptionalLen("subcategoria", req.Subcategory, 1, 80),
		checkOptionalLen("subcategoriaDetalle", req.SubcategoryDetail, 0, 200),
		checkLen("message", req.Message, 10, 8000),
	}
	for _, err := range checks {
		if err != nil {
			return req, err
		}
	}
	if !req.AcceptPrivacy {
		return req, invalid("acceptPrivacy", "must be accepted")
	}
	return req, nil
}

// SubmitContact stores a contact message and notifies the firm.
func (s *IntakeService) SubmitContact(ctx context.Context, req ContactRequest) (Receipt, error) {
	l := slogx.FromContext(ctx)

	req, err := normalizeContact(req)
	if err != nil {
		return Receipt{}, err
	}

	sealed, err := s.Cipher.Encrypt(domain.ContactPII{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Country:           req.Country,
		Department:        req.Department,
		Subcategory:       req.Subcategory,
		SubcategoryDetail: req.SubcategoryDetail,
		Message:           req.Message,
	})
	if err != nil {
		l.Error("failed to seal contact pii", slog.Any("error", err))
		return Receipt{}, fmt.Errorf("seal contact: %w", err)
	}

	now := s.now()
	msg := domain.ContactMessage{
		ID:           idx.NewAt(now).String(),
		Subject:      req.Subject,
		PIIEncrypted: sealed,
		CreatedAt:    now,
	}
	if err := s.Store.Contacts().CreateContactMessage(ctx, msg); err != nil {
		l.Error("failed to store contact message", slog.Any("error", err))
		return Receipt{}, fmt.Errorf("store contact: %w", err)
	}
	l.Info("contact message received", slog.String("contact_id", msg.ID), slog.String("subject", msg.Subject))

	err = s.notifier().Notify(ctx, notify.Message{
		Subject: "Nuevo contacto: " + req.Subject,
		Text:    contactEmailText(req),
	})
	return Receipt{ID: msg.ID, Notification: bestEffort(ctx, "contact_email", err)}, nil
}

func contactEmailText(req ContactRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\n", req.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n", req.Phone)
	fmt.Fprintf(&b, "País: %s\n", req.Country)
	fmt.Fprintf(&b, "Departamento: %s\n", req.Department)
	if req.Subcategory != "" {
		fmt.Fprintf(&b, "Subcategoría: %s\n", req.Subcategory)
	}
	if req.SubcategoryDetail != "" {
		fmt.Fprintf(&b, "Especificar: %s\n", req.SubcategoryDetail)
	}
	fmt.Fprintf(&b, "Asunto: %s\n\n", req.Subject)
	b.WriteString(req.Message)
	return b.String()
}

func normalizeReport(req ReportRequest) (ReportRequest, error) {
	req.Type = clean(req.Type)
	req.Country = clean(req.Country)
	req.Department = clean(req.Department)
	req.City = clean(req.City)
	req.IDType = clean(req.IDType)
	req.IDNumber = digitsOnly(req.IDNumber)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.FirstName = clean(req.FirstName)
	req.LastName = clean(req.LastName)
	req.Category = clean(req.Category)
	req.Subcategory = clean(req.Subcategory)
	req.SubcategoryDetail = clean(req.SubcategoryDetail)
	req.Details = clean(req.Details)

	checks := []error{
		checkLen("tipo", req.Type, 1, 120),
		checkLen("pais", req.Country, 1, 80),
		checkLen("departamento", req.Department, 1, 80),
		checkLen("ciudad", req.City, 1, 120),
		checkLen("idType", req.IDType, 1, 40),
		checkLen("idNumber", req.IDNumber, 1, 40),
		checkEmail("email", req.Email),
		checkLen("celular", req.Mobile, 6, 40),
		checkLen("nombre", req.FirstName, 1, 120),
		checkLen("apellido", req.LastName, 1, 120),
		checkOptionalLen("categoria", req.Category, 1, 80),
		checkOptionalLen("subcategoria", req.Subcategory, 1, 80),
		checkOptionalLen("subcategoriaDetalle", req.SubcategoryDetail, 0, 200),
		checkOptionalLen("details", req.Details, 0, 8000),
	}
	for _, err := range checks {
		if err != nil {
			return req, err
		}
	}
	if req.CostUYU < 0 {
		return req, invalid("costoUyu", "must not be negative")
	}
	if !req.AcceptPrivacy {
		return req, invalid("acceptPrivacy", "must be accepted")
	}
	return req, nil
}

// QuoteReport returns the price of a report type. Unknown or disabled types,
// and any store failure, fall back to domain.DefaultServiceFeeUYU.
func (s *IntakeService) QuoteReport(ctx context.Context, reportType string) int64 {
	svc, err := s.Store.LegalServices().GetEnabledLegalService(ctx, reportType)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("pricing lookup failed, using default fee",
				slog.String("report_type", reportType),
				slog.Any("error", err),
			)
		}
		return domain.DefaultServiceFeeUYU
	}
	return svc.TotalUYU()
}

// SubmitReport stores a report after checking the client's quoted cost
// against the server-side price.
func (s *IntakeService) SubmitReport(ctx context.Context, req ReportRequest) (Receipt, error) {
	l := slogx.FromContext(ctx)

	req, err := normalizeReport(req)
	if err != nil {
		return Receipt{}, err
	}

	if expected := s.QuoteReport(ctx, req.Type); req.CostUYU != expected {
		l.Info("report cost mismatch",
			slog.String("report_type", req.Type),
			slog.Int64("quoted", req.CostUYU),
			slog.Int64("expected", expected),
		)
		return Receipt{}, ErrInvalidCost
	}

	sealed, err := s.Cipher.Encrypt(domain.ReportPII{
		IDType:            req.IDType,
		IDNumber:          req.IDNumber,
		Email:             req.Email,
		Mobile:            req.Mobile,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		SubcategoryDetail: req.SubcategoryDetail,
	})
	if err != nil {
		l.Error("failed to seal report pii", slog.Any("error", err))
		return Receipt{}, fmt.Errorf("seal report: %w", err)
	}

	now := s.now()
	rep := domain.Report{
		ID:           idx.NewAt(now).String(),
		ReportType:   req.Type,
		Country:      req.Country,
		Department:   req.Department,
		City:         req.City,
		CostUYU:      req.CostUYU,
		PIIEncrypted: sealed,
		CreatedAt:    now,
	}
	if err := s.Store.Reports().CreateReport(ctx, rep); err != nil {
		l.Error("failed to store report", slog.Any("error", err))
		return Receipt{}, fmt.Errorf("store report: %w", err)
	}
	l.Info("report received", slog.String("report_id", rep.ID), slog.String("report_type", rep.ReportType))

	meta := bestEffort(ctx, "report_metadata",
		s.Store.Reports().UpdateReportMetadata(ctx, rep.ID, req.IDType, req.Details))

	err = s.notifier().Notify(ctx, notify.Message{
		Subject: "Nueva denuncia: " + req.Type,
		Text:    reportEmailText(req),
	})
	return Receipt{ID: rep.ID, Notification: bestEffort(ctx, "report_email", err), Metadata: meta}, nil
}

func reportEmailText(req ReportRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tipo: %s\n", req.Type)
	if req.Category != "" {
		fmt.Fprintf(&b, "Categoría: %s\n", req.Category)
	}
	if req.Subcategory != "" {
		fmt.Fprintf(&b, "Subcategoría: %s\n", req.Subcategory)
	}
	if req.SubcategoryDetail != "" {
		fmt.Fprintf(&b, "Especificar: %s\n", req.SubcategoryDetail)
	}
	fmt.Fprintf(&b, "País: %s\n", req.Country)
	fmt.Fprintf(&b, "Departamento: %s\n", req.Department)
	fmt.Fprintf(&b, "Ciudad: %s\n", req.City)
	fmt.Fprintf(&b, "Costo (UYU): %s\n\n", strconv.FormatInt(req.CostUYU, 10))
	b.WriteString("Contacto:\n")
	fmt.Fprintf(&b, "- Nombre: %s %s\n", req.FirstName, req.LastName)
	fmt.Fprintf(&b, "- Email: %s\n", req.Email)
	fmt.Fprintf(&b, "- Teléfono: %s\n\n", req.Mobile)
	if req.Details != "" {
		fmt.Fprintf(&b, "Detalles:\n%s\n", req.Details)
	}
	return b.String()
}

// ListServices returns the enabled legal services. When none are configured
// or the store fails, the built-in catalogue is returned instead.
func (s *IntakeService) ListServices(ctx context.Context) []domain.LegalService {
	items, err := s.Store.LegalServices().ListEnabledLegalServices(ctx)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to list legal services, using defaults", slog.Any("error", err))
		return DefaultLegalServices()
	}
	if len(items) == 0 {
		return DefaultLegalServices()
	}
	return items
}

// DefaultLegalServices is the built-in catalogue, every entry priced at
// domain.DefaultServiceFeeUYU.
func DefaultLegalServices() []domain.LegalService {
	entries := []struct{ slug, name, desc string }{
		{"consulta-general", "Consulta general", "Orientación inicial y evaluación del caso."},
		{"problemas-familiares", "Problemas familiares", "Divorcio, tenencia, alimentos y régimen de visitas."},
		{"problemas-laborales", "Problemas laborales", "Despidos, liquidaciones, reclamos y asesoramiento."},
		{"conflictos-civiles", "Conflictos civiles", "Daños, incumplimientos y conflictos entre particulares."},
		{"defensa-penal", "Defensa penal", "Asistencia y defensa en procesos penales."},
		{"empresas-y-contratos", "Empresas y contratos", "Contratos, sociedades y asesoramiento empresarial."},
		{"herencias-y-sucesiones", "Herencias y sucesiones", "Sucesiones, herencias y particiones."},
		{"privacidad-y-datos-personales", "Privacidad y datos personales", "Protección de datos, privacidad y compliance."},
	}
	out := make([]domain.LegalService, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.LegalService{
			Slug:        e.slug,
			Name:        e.name,
			Description: e.desc,
			LegalFeeUYU: domain.DefaultServiceFeeUYU,
			Enabled:     true,
		})
	}
	return out
}
