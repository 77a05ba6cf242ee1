package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type authAuditsRepo struct {
	db dbtx
}

func (r *authAuditsRepo) CreateAuthAudit(ctx context.Context, a domain.AuthAudit) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_audit (id, email, ip, user_agent, success, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Email, a.IP, a.UserAgent, a.Success, a.CreatedAt.UTC(),
	)
	return err
}

func (r *authAuditsRepo) DeleteAuthAuditsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM auth_audit WHERE created_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
