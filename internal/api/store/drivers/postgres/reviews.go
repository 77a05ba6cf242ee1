package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type reviewsRepo struct {
	db dbtx
}

const reviewColumns = `id, name, rating, message, status, created_at, approved_at`

func scanReview(row pgx.Row) (domain.Review, error) {
	var (
		rv     domain.Review
		status string
	)
	err := row.Scan(&rv.ID, &rv.Name, &rv.Rating, &rv.Message, &status, &rv.CreatedAt, &rv.ApprovedAt)
	rv.Status = domain.ReviewStatus(status)
	return rv, err
}

func (r *reviewsRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.Name, rv.Rating, rv.Message, string(rv.Status), rv.CreatedAt.UTC(), rv.ApprovedAt,
	)
	return mapUniqueViolation(err)
}

func (r *reviewsRepo) GetReviewByID(ctx context.Context, id string) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
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
		ORDER BY approved_at DESC NULLS LAST, created_at DESC
		LIMIT $1`, limit)
}

func (r *reviewsRepo) ListReviewsByStatus(
	ctx context.Context,
	status domain.ReviewStatus,
	limit int,
) ([]domain.Review, error) {
	return r.list(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, string(status), limit)
}

func (r *reviewsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Review, error) {
		return scanReview(row)
	})
}

func (r *reviewsRepo) SetReviewStatus(
	ctx context.Context,
	id string,
	status domain.ReviewStatus,
	approvedAt *time.Time,
) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE reviews SET status = $1, approved_at = $2 WHERE id = $3`,
		string(status), approvedAt, id,
	))
}

func (r *reviewsRepo) DeleteReview(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id))
}
