package lexsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SubmitReview stores a review pending moderation and returns its id.
func (c *SDKClient) SubmitReview(ctx context.Context, req ReviewRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/reviews", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ListReviews returns approved reviews, newest first. A limit of zero uses
// the server default.
func (c *SDKClient) ListReviews(ctx context.Context, limit int) ([]Review, error) {
	path := "/api/reviews"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out ReviewsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// AdminListReviews lists reviews in status. Empty status means pending.
func (c *SDKClient) AdminListReviews(ctx context.Context, status string, limit int) ([]Review, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/admin/reviews"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out ReviewsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ApproveReview publishes a review.
func (c *SDKClient) ApproveReview(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, reviewPath(id, "/approve"), nil, nil)
}

// RejectReview hides a review.
func (c *SDKClient) RejectReview(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, reviewPath(id, "/reject"), nil, nil)
}

// DeleteReview removes a review.
func (c *SDKClient) DeleteReview(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, reviewPath(id, ""), nil, nil)
}

func reviewPath(id, suffix string) string {
	return fmt.Sprintf("/api/admin/reviews/%s%s", url.PathEscape(id), suffix)
}
