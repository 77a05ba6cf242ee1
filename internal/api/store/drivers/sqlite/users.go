package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, phone, password_hash, role, created_at, updated_at`

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var (
		u                    domain.User
		role                 string
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		normalizeEmail(email),
	).Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &role, &createdAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	created, updated := userTimes(u)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role),
		formatTime(created), formatTime(updated),
	)
	return mapUniqueViolation(err)
}

func (r *usersRepo) UpsertRootUser(ctx context.Context, u domain.User) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = excluded.password_hash,
			role = excluded.role,
			updated_at = excluded.updated_at`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role), now, now,
	)
	return err
}

func (r *usersRepo) EnsureStaffUser(ctx context.Context, u domain.User) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			phone = CASE WHEN users.phone = '' THEN excluded.phone ELSE users.phone END,
			updated_at = excluded.updated_at`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role), now, now,
	)
	return err
}

// userTimes fills unset timestamps with the current time.
func userTimes(u domain.User) (created, updated time.Time) {
	created = u.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated = u.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	return created, updated
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
