package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type pageViewsRepo struct {
	db dbtx
}

func (r *pageViewsRepo) CreatePageView(ctx context.Context, v domain.PageView) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO page_views (id, path, referrer, created_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.Path, v.Referrer, v.CreatedAt.UTC(),
	)
	return err
}

func (r *pageViewsRepo) CountPageViewsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM page_views WHERE created_at >= $1`, since.UTC(),
	).Scan(&n)
	return n, err
}

func (r *pageViewsRepo) PageViewsPerDay(ctx context.Context, since time.Time) ([]domain.DayCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM page_views
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC`, since.UTC())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DayCount, error) {
		var d domain.DayCount
		err := row.Scan(&d.Day, &d.Count)
		return d, err
	})
}

func (r *pageViewsRepo) TopPaths(ctx context.Context, since time.Time, limit int) ([]domain.PathCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT path, COUNT(*) AS views
		FROM page_views
		WHERE created_at >= $1
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT $2`, since.UTC(), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PathCount, error) {
		var p domain.PathCount
		err := row.Scan(&p.Path, &p.Count)
		return p, err
	})
}

func (r *pageViewsRepo) ListRecentPageViews(ctx context.Context, limit int) ([]domain.PageView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, path, referrer, created_at
		FROM page_views
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PageView, error) {
		var v domain.PageView
		err := row.Scan(&v.ID, &v.Path, &v.Referrer, &v.CreatedAt)
		return v, err
	})
}
