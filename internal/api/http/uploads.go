package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 1 << 20

// HandleUpload handles POST /api/admin/upload
//
//	@Summary		Upload an image
//	@Description	Stores a jpeg, png, webp or gif of at most 3 MiB under a random name.
//	@Tags			Admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			image	formData	file	true	"Image"
//	@Success		200		{object}	lexsdk.UploadResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"image required or unsupported image type"
//	@Failure		413		{object}	lexsdk.ErrorResponse	"image too large"
//	@Router			/api/admin/upload [post].
func (h *AdminHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "image required")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "image required")
		return
	}
	defer file.Close()

	url, err := h.UploadService.Save(r.Context(), header.Header.Get("Content-Type"), file)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrImageRequired):
		httpx.WriteError(w, http.StatusBadRequest, "image required")
		return
	case errors.Is(err, service.ErrUnsupportedImage):
		httpx.WriteError(w, http.StatusBadRequest, "unsupported image type")
		return
	case errors.Is(err, service.ErrImageTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	default:
		writeServiceError(w, r, "upload image", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lexsdk.UploadResponse{OK: true, URL: url})
}

// UploadsHandler serves stored images.
type UploadsHandler struct {
	UploadService *service.UploadService
}

// ServeHTTP handles GET /uploads/{name}
//
//	@Summary		Fetch an uploaded image
//	@Tags			Uploads
//	@Produce		image/jpeg,image/png,image/webp,image/gif
//	@Param			name	path	string	true	"File name"
//	@Success		200
//	@Failure		404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router			/uploads/{name} [get].
func (h *UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, info, err := h.UploadService.Open(r.Context(), r.PathValue("name"))
	if errors.Is(err, blob.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeServiceError(w, r, "open upload", err)
		return
	}
	defer body.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", info.ContentType)
	hdr.Set("X-Content-Type-Options", "nosniff")
	hdr.Set("Cache-Control", "public, max-age=86400")
	if info.Size > 0 {
		hdr.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to stream upload", "error", err)
	}
}
