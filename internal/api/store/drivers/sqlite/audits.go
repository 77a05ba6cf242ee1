package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type authAuditsRepo struct {
	db dbtx
}

func (r *authAuditsRepo) CreateAuthAudit(ctx context.Context, a domain.AuthAudit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_audit (id, email, ip, user_agent, success, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.IP, a.UserAgent, boolToInt(a.Success), formatTime(a.CreatedAt),
	)
	return err
}

func (r *authAuditsRepo) DeleteAuthAuditsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_audit WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
