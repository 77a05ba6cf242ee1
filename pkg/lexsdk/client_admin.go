package lexsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// AdminListContacts returns the latest contact messages with PII decrypted.
func (c *SDKClient) AdminListContacts(ctx context.Context) ([]AdminContact, error) {
	var out AdminContactsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/contacts", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// AdminListReports returns the latest reports with PII decrypted.
func (c *SDKClient) AdminListReports(ctx context.Context) ([]AdminReport, error) {
	var out AdminReportsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/reports", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// UploadImage uploads an image as the multipart field "image" and returns
// its public URL.
func (c *SDKClient) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/admin/upload", &buf, map[string]string{
		"Content-Type": mw.FormDataContentType(),
		"Accept":       "application/json",
	})
	if err != nil {
		return "", err
	}

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.URL, nil
}
