package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type reviewsRepo struct {
	db dbtx
}

const reviewColumns = `id, name, rating, message, status, created_at, approved_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (domain.Review, error) {
	var (
		rv         domain.Review
		status     string
		createdAt  string
		approvedAt sql.NullString
	)
	if err := row.Scan(&rv.ID, &rv.Name, &rv.Rating, &rv.Message, &status, &createdAt, &approvedAt); err != nil {
		return domain.Review{}, err
	}
	rv.Status = domain.ReviewStatus(status)

	var err error
	if rv.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Review{}, err
	}
	if rv.ApprovedAt, err = parseNullTimePtr(approvedAt); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *reviewsRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.Name, rv.Rating, rv.Message, string(rv.Status),
		formatTime(rv.CreatedAt), formatOptionalTime(rv.ApprovedAt),
	)
	return mapUniqueViolation(err)
}

func (r *reviewsRepo) GetReviewByID(ctx context.Context, id string) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
	if err != nil {
		return domain.Review{}, mapNotFound(err)
	}
	return rv, nil
}

func (r *reviewsRepo) ListApprovedReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE status = 'approved'
		ORDER BY approved_at IS NULL, approved_at DESC, created_at DESC
		LIMIT ?`, limit)
}

func (r *reviewsRepo) ListReviewsByStatus(
	ctx context.Context,
	status domain.ReviewStatus,
	limit int,
) ([]domain.Review, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, string(status), limit)
}

func (r *reviewsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) SetReviewStatus(
	ctx context.Context,
	id string,
	status domain.ReviewStatus,
	approvedAt *time.Time,
) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE reviews SET status = ?, approved_at = ? WHERE id = ?`,
		string(status), formatOptionalTime(approvedAt), id,
	))
}

func (r *reviewsRepo) DeleteReview(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id))
}
