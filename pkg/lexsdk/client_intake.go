package lexsdk

import (
	"context"
	"net/http"
)

// SubmitContact stores a contact message and returns its id.
func (c *SDKClient) SubmitContact(ctx context.Context, req ContactRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/contact", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// SubmitReport stores a report request and returns its id.
func (c *SDKClient) SubmitReport(ctx context.Context, req ReportRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/reports", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ListServices returns the priced report types.
func (c *SDKClient) ListServices(ctx context.Context) ([]LegalService, error) {
	var out ServicesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
