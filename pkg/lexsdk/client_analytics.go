package lexsdk

import (
	"context"
	"net/http"
	"strconv"
)

// RecordPageView records a public page view.
func (c *SDKClient) RecordPageView(ctx context.Context, req PageViewRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/analytics/pageview", req, nil)
}

// AnalyticsOverview summarizes page views over the last days.
func (c *SDKClient) AnalyticsOverview(ctx context.Context, days int) (*AnalyticsOverview, error) {
	path := "/api/admin/analytics/overview"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	var out AnalyticsOverview
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentPageViews lists the latest page views.
func (c *SDKClient) RecentPageViews(ctx context.Context, limit int) ([]PageView, error) {
	path := "/api/admin/analytics/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out PageViewsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
