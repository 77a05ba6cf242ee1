package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

func TestAnalyticsService(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)
	svc := &AnalyticsService{Store: s}

	record := func(at time.Time, path string) {
		svc.Now = fixedClock(at)
		se, err := svc.RecordPageView(ctx, path, "")
		require.NoError(t, err)
		require.True(t, se.OK())
	}
	record(now.Add(-48*time.Hour), "/")
	record(now.Add(-24*time.Hour), "/servicios")
	record(now.Add(-25*time.Hour), "/")
	record(now.Add(-60*24*time.Hour), "/old")

	svc.Now = fixedClock(now)
	ov := svc.Overview(ctx, 30)
	require.Equal(t, 3, ov.Total)
	require.Equal(t, []domain.DayCount{{Day: "2026-05-01", Count: 1}, {Day: "2026-05-02", Count: 2}}, ov.PerDay)
	require.Equal(t, []domain.PathCount{{Path: "/", Count: 2}, {Path: "/servicios", Count: 1}}, ov.TopPaths)

	recent := svc.Recent(ctx, 2)
	require.Len(t, recent, 2)
	require.Equal(t, "/servicios", recent[0].Path)
}

func TestAnalyticsService_Validation(t *testing.T) {
	svc := &AnalyticsService{Store: newTestStore(t)}

	_, err := svc.RecordPageView(context.Background(), "   ", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPageView(context.Background(), "/", string(make([]byte, 501)))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyticsService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	svc := &AnalyticsService{Store: failingStore{Store: newTestStore(t), pageViews: brokenPageViews{}}}

	se, err := svc.RecordPageView(ctx, "/", "")
	require.NoError(t, err)
	require.False(t, se.OK())

	ov := svc.Overview(ctx, 30)
	require.Zero(t, ov.Total)
	require.Empty(t, ov.PerDay)
	require.NotNil(t, ov.TopPaths)

	require.Empty(t, svc.Recent(ctx, 10))
}
