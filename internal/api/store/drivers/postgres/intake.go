package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type contactsRepo struct {
	db dbtx
}

func (r *contactsRepo) CreateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO contact_messages (id, subject, pii_encrypted, created_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.Subject, m.PIIEncrypted, m.CreatedAt.UTC(),
	)
	return mapUniqueViolation(err)
}

func (r *contactsRepo) ListContactMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, subject, pii_encrypted, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContactMessage, error) {
		var m domain.ContactMessage
		err := row.Scan(&m.ID, &m.Subject, &m.PIIEncrypted, &m.CreatedAt)
		return m, err
	})
}

type reportsRepo struct {
	db dbtx
}

func (r *reportsRepo) CreateReport(ctx context.Context, rep domain.Report) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reports (id, report_type, country, department, city, cost_uyu, id_type, details, pii_encrypted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rep.ID, rep.ReportType, rep.Country, rep.Department, rep.City, rep.CostUYU,
		rep.IDType, rep.Details, rep.PIIEncrypted, rep.CreatedAt.UTC(),
	)
	return mapUniqueViolation(err)
}

func (r *reportsRepo) UpdateReportMetadata(ctx context.Context, id, idType, details string) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE reports SET id_type = $1, details = $2 WHERE id = $3`,
		idType, details, id,
	))
}

func (r *reportsRepo) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, report_type, country, department, city, cost_uyu, id_type, details, pii_encrypted, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Report, error) {
		var rep domain.Report
		err := row.Scan(
			&rep.ID, &rep.ReportType, &rep.Country, &rep.Department, &rep.City, &rep.CostUYU,
			&rep.IDType, &rep.Details, &rep.PIIEncrypted, &rep.CreatedAt,
		)
		return rep, err
	})
}

type legalServicesRepo struct {
	db dbtx
}

func scanLegalService(row pgx.CollectableRow) (domain.LegalService, error) {
	var s domain.LegalService
	err := row.Scan(&s.Slug, &s.Name, &s.Description, &s.BaseCostUYU, &s.LegalFeeUYU, &s.Enabled)
	return s, err
}

func (r *legalServicesRepo) GetEnabledLegalService(ctx context.Context, slug string) (domain.LegalService, error) {
	var s domain.LegalService
	err := r.db.QueryRow(ctx, `
		SELECT slug, name, description, base_cost_uyu, legal_fee_uyu, enabled
		FROM legal_services
		WHERE slug = $1 AND enabled = TRUE`, slug,
	).Scan(&s.Slug, &s.Name, &s.Description, &s.BaseCostUYU, &s.LegalFeeUYU, &s.Enabled)
	if err != nil {
		return domain.LegalService{}, mapNotFound(err)
	}
	return s, nil
}

func (r *legalServicesRepo) ListEnabledLegalServices(ctx context.Context) ([]domain.LegalService, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slug, name, description, base_cost_uyu, legal_fee_uyu, enabled
		FROM legal_services
		WHERE enabled = TRUE
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanLegalService)
}

func (r *legalServicesRepo) UpsertLegalService(ctx context.Context, s domain.LegalService) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO legal_services (slug, name, description, base_cost_uyu, legal_fee_uyu, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			base_cost_uyu = EXCLUDED.base_cost_uyu,
			legal_fee_uyu = EXCLUDED.legal_fee_uyu,
			enabled = EXCLUDED.enabled`,
		s.Slug, s.Name, s.Description, s.BaseCostUYU, s.LegalFeeUYU, s.Enabled,
	)
	return err
}
