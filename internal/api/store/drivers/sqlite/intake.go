package sqlite

import (
	"context"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type contactsRepo struct {
	db dbtx
}

func (r *contactsRepo) CreateContactMessage(ctx context.Context, m domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, subject, pii_encrypted, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, m.Subject, m.PIIEncrypted, formatTime(m.CreatedAt),
	)
	return mapUniqueViolation(err)
}

func (r *contactsRepo) ListContactMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subject, pii_encrypted, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ContactMessage, 0)
	for rows.Next() {
		var (
			m         domain.ContactMessage
			createdAt string
		)
		if err := rows.Scan(&m.ID, &m.Subject, &m.PIIEncrypted, &createdAt); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type reportsRepo struct {
	db dbtx
}

func (r *reportsRepo) CreateReport(ctx context.Context, rep domain.Report) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reports (id, report_type, country, department, city, cost_uyu, id_type, details, pii_encrypted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.ReportType, rep.Country, rep.Department, rep.City, rep.CostUYU,
		rep.IDType, rep.Details, rep.PIIEncrypted, formatTime(rep.CreatedAt),
	)
	return mapUniqueViolation(err)
}

func (r *reportsRepo) UpdateReportMetadata(ctx context.Context, id, idType, details string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE reports SET id_type = ?, details = ? WHERE id = ?`,
		idType, details, id,
	))
}

func (r *reportsRepo) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, report_type, country, department, city, cost_uyu, id_type, details, pii_encrypted, created_at
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Report, 0)
	for rows.Next() {
		var (
			rep       domain.Report
			createdAt string
		)
		if err := rows.Scan(
			&rep.ID, &rep.ReportType, &rep.Country, &rep.Department, &rep.City, &rep.CostUYU,
			&rep.IDType, &rep.Details, &rep.PIIEncrypted, &createdAt,
		); err != nil {
			return nil, err
		}
		if rep.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type legalServicesRepo struct {
	db dbtx
}

func (r *legalServicesRepo) GetEnabledLegalService(ctx context.Context, slug string) (domain.LegalService, error) {
	var s domain.LegalService
	err := r.db.QueryRowContext(ctx, `
		SELECT slug, name, description, base_cost_uyu, legal_fee_uyu, enabled
		FROM legal_services
		WHERE slug = ? AND enabled = 1`, slug,
	).Scan(&s.Slug, &s.Name, &s.Description, &s.BaseCostUYU, &s.LegalFeeUYU, &s.Enabled)
	if err != nil {
		return domain.LegalService{}, mapNotFound(err)
	}
	return s, nil
}

func (r *legalServicesRepo) ListEnabledLegalServices(ctx context.Context) ([]domain.LegalService, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT slug, name, description, base_cost_uyu, legal_fee_uyu, enabled
		FROM legal_services
		WHERE enabled = 1
		ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LegalService, 0)
	for rows.Next() {
		var s domain.LegalService
		if err := rows.Scan(&s.Slug, &s.Name, &s.Description, &s.BaseCostUYU, &s.LegalFeeUYU, &s.Enabled); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *legalServicesRepo) UpsertLegalService(ctx context.Context, s domain.LegalService) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO legal_services (slug, name, description, base_cost_uyu, legal_fee_uyu, enabled)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			base_cost_uyu = excluded.base_cost_uyu,
			legal_fee_uyu = excluded.legal_fee_uyu,
			enabled = excluded.enabled`,
		s.Slug, s.Name, s.Description, s.BaseCostUYU, s.LegalFeeUYU, boolToInt(s.Enabled),
	)
	return err
}
