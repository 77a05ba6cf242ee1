package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type pageViewsRepo struct {
	db dbtx
}

func (r *pageViewsRepo) CreatePageView(ctx context.Context, v domain.PageView) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO page_views (id, path, referrer, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Path, v.Referrer, formatTime(v.CreatedAt),
	)
	return err
}

func (r *pageViewsRepo) CountPageViewsSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE created_at >= ?`, formatTime(since),
	).Scan(&n)
	return n, err
}

func (r *pageViewsRepo) PageViewsPerDay(ctx context.Context, since time.Time) ([]domain.DayCount, error) {
	// created_at is stored as fixed width UTC text, so its first ten
	// characters are the day.
	rows, err := r.db.QueryContext(ctx, `
		SELECT substr(created_at, 1, 10) AS day, COUNT(*)
		FROM page_views
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day ASC`, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DayCount, 0)
	for rows.Next() {
		var d domain.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *pageViewsRepo) TopPaths(ctx context.Context, since time.Time, limit int) ([]domain.PathCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM page_views
		WHERE created_at >= ?
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?`, formatTime(since), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PathCount, 0)
	for rows.Next() {
		var p domain.PathCount
		if err := rows.Scan(&p.Path, &p.Count); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *pageViewsRepo) ListRecentPageViews(ctx context.Context, limit int) ([]domain.PageView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, path, referrer, created_at
		FROM page_views
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PageView, 0)
	for rows.Next() {
		var (
			v         domain.PageView
			createdAt string
		)
		if err := rows.Scan(&v.ID, &v.Path, &v.Referrer, &createdAt); err != nil {
			return nil, err
		}
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
