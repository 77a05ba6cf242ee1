package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

const topPathsLimit = 10

// AnalyticsService records page views and summarises them for staff.
// Analytics never fails a request: store errors are logged and degrade to
// empty results.
type AnalyticsService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordPageView validates and stores a page view. Only invalid input is
// returned as an error; a store failure comes back as a failed SideEffect.
func (s *AnalyticsService) RecordPageView(ctx context.Context, path, referrer string) (SideEffect, error) {
	path = strings.TrimSpace(path)
	referrer = strings.TrimSpace(referrer)
	if err := checkLen("path", path, 1, 200); err != nil {
		return SideEffect{}, err
	}
	if err := checkOptionalLen("referrer", referrer, 0, 500); err != nil {
		return SideEffect{}, err
	}

	now := s.now()
	err := s.Store.PageViews().CreatePageView(ctx, domain.PageView{
		ID:        idx.NewAt(now).String(),
		Path:      path,
		Referrer:  referrer,
		CreatedAt: now,
	})
	return bestEffort(ctx, "page_view", err), nil
}

// Overview summarises the trailing window of days. Any store failure yields
// a zero overview.
func (s *AnalyticsService) Overview(ctx context.Context, days int) domain.AnalyticsOverview {
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	empty := domain.AnalyticsOverview{PerDay: []domain.DayCount{}, TopPaths: []domain.PathCount{}}
	l := slogx.FromContext(ctx)

	total, err := s.Store.PageViews().CountPageViewsSince(ctx, since)
	if err != nil {
		l.Warn("analytics overview failed", slog.String("step", "count"), slog.Any("error", err))
		return empty
	}
	perDay, err := s.Store.PageViews().PageViewsPerDay(ctx, since)
	if err != nil {
		l.Warn("analytics overview failed", slog.String("step", "per_day"), slog.Any("error", err))
		return empty
	}
	top, err := s.Store.PageViews().TopPaths(ctx, since, topPathsLimit)
	if err != nil {
		l.Warn("analytics overview failed", slog.String("step", "top_paths"), slog.Any("error", err))
		return empty
	}

	return domain.AnalyticsOverview{Total: total, PerDay: perDay, TopPaths: top}
}

// Recent returns the latest page views, or none on store failure.
func (s *AnalyticsService) Recent(ctx context.Context, limit int) []domain.PageView {
	items, err := s.Store.PageViews().ListRecentPageViews(ctx, limit)
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to list recent page views", slog.Any("error", err))
		return []domain.PageView{}
	}
	return items
}
