package http

import (
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

// AnalyticsHandler handles public page-view tracking.
type AnalyticsHandler struct {
	AnalyticsService *service.AnalyticsService
}

// HandlePageView handles POST /api/analytics/pageview
//
//	@Summary		Record a page view
//	@Description	Never fails on storage errors: the response is then {"ok":false}.
//	@Tags			Analytics
//	@Accept			json
//	@Produce		json
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.PageViewRequest	true	"Page view"
//	@Success		200		{object}	lexsdk.OKResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"field: reason"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Router			/api/analytics/pageview [post].
func (h *AnalyticsHandler) HandlePageView(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.PageViewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	effect, err := h.AnalyticsService.RecordPageView(r.Context(), req.Path, req.Referrer)
	if err != nil {
		writeServiceError(w, r, "record page view", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lexsdk.OKResponse{OK: effect.OK()})
}
