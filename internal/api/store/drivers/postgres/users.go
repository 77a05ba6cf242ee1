package postgres

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
		u    domain.User
		role string
	)
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	created, updated := u.CreatedAt, u.UpdatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if updated.IsZero() {
		updated = created
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role), created.UTC(), updated.UTC(),
	)
	return mapUniqueViolation(err)
}

func (r *usersRepo) UpsertRootUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role), time.Now().UTC(),
	)
	return err
}

func (r *usersRepo) EnsureStaffUser(ctx context.Context, u domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE SET
			phone = CASE WHEN users.phone = '' THEN EXCLUDED.phone ELSE users.phone END,
			updated_at = EXCLUDED.updated_at`,
		u.ID, normalizeEmail(u.Email), u.Phone, u.PasswordHash, string(u.Role), time.Now().UTC(),
	)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
