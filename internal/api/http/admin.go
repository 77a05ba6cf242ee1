package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const (
	defaultModerationLimit = 200
	defaultOverviewDays    = 30
	maxOverviewDays        = 365
	defaultRecentViews     = 100
	maxAdminLimit          = 500
)

// AdminHandler handles the staff-only endpoints. Every route is behind the
// staff role gate.
type AdminHandler struct {
	AdminService     *service.AdminService
	ReviewService    *service.ReviewService
	AnalyticsService *service.AnalyticsService
	UploadService    *service.UploadService
}

// HandleContacts handles GET /api/admin/contacts
//
//	@Summary		List contact messages
//	@Description	Newest 200 messages with personal data decrypted. Rows that cannot be decrypted are listed with empty fields.
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	lexsdk.AdminContactsResponse
//	@Failure		401	{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Failure		403	{object}	lexsdk.ErrorResponse	"forbidden"
//	@Failure		500	{object}	lexsdk.ErrorResponse	"internal error"
//	@Router			/api/admin/contacts [get].
func (h *AdminHandler) HandleContacts(w http.ResponseWriter, r *http.Request) {
	views, err := h.AdminService.ListContacts(r.Context())
	if err != nil {
		writeServiceError(w, r, "list contacts", err)
		return
	}

	response := lexsdk.AdminContactsResponse{Items: make([]lexsdk.AdminContact, len(views))}
	for i, v := range views {
		response.Items[i] = lexsdk.AdminContact{
			ID:                v.ID,
			Subject:           v.Subject,
			CreatedAt:         v.CreatedAt,
			Name:              v.PII.Name,
			Email:             v.PII.Email,
			Phone:             v.PII.Phone,
			Country:           v.PII.Country,
			Department:        v.PII.Department,
			Subcategory:       v.PII.Subcategory,
			SubcategoryDetail: v.PII.SubcategoryDetail,
			Message:           v.PII.Message,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleReports handles GET /api/admin/reports
//
//	@Summary		List report requests
//	@Description	Newest 200 reports with personal data decrypted, with the same fallback as contacts.
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Success		200	{object}	lexsdk.AdminReportsResponse
//	@Failure		401	{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Failure		403	{object}	lexsdk.ErrorResponse	"forbidden"
//	@Failure		500	{object}	lexsdk.ErrorResponse	"internal error"
//	@Router			/api/admin/reports [get].
func (h *AdminHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	views, err := h.AdminService.ListReports(r.Context())
	if err != nil {
		writeServiceError(w, r, "list reports", err)
		return
	}

	response := lexsdk.AdminReportsResponse{Items: make([]lexsdk.AdminReport, len(views))}
	for i, v := range views {
		idType := v.PII.IDType
		if idType == "" {
			idType = v.IDType
		}
		response.Items[i] = lexsdk.AdminReport{
			ID:                v.ID,
			Type:              v.ReportType,
			Country:           v.Country,
			Department:        v.Department,
			City:              v.City,
			CostUYU:           v.CostUYU,
			Details:           v.Details,
			CreatedAt:         v.CreatedAt,
			IDType:            idType,
			IDNumber:          v.PII.IDNumber,
			Email:             v.PII.Email,
			Mobile:            v.PII.Mobile,
			FirstName:         v.PII.FirstName,
			LastName:          v.PII.LastName,
			Category:          v.PII.Category,
			Subcategory:       v.PII.Subcategory,
			SubcategoryDetail: v.PII.SubcategoryDetail,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleListReviews handles GET /api/admin/reviews
//
//	@Summary		Moderation queue
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Param			status	query		string	false	"pending (default), approved or rejected"
//	@Param			limit	query		int		false	"1..500, default 200"
//	@Success		200		{object}	lexsdk.ReviewsResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Failure		401		{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"forbidden"
//	@Router			/api/admin/reviews [get].
func (h *AdminHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultModerationLimit, 1, maxAdminLimit)
	if !ok {
		writeInvalidParams(w)
		return
	}
	status := domain.ReviewStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.ReviewPending
	}

	items, err := h.ReviewService.ListByStatus(r.Context(), status, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeInvalidParams(w)
			return
		}
		writeServiceError(w, r, "list reviews", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lexsdk.ReviewsResponse{Items: moderationReviews(items)})
}

// HandleApproveReview handles POST /api/admin/reviews/{id}/approve
//
//	@Summary		Approve a review
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			id	path		string	true	"Review ID"
//	@Success		200	{object}	lexsdk.OKResponse
//	@Failure		404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router			/api/admin/reviews/{id}/approve [post].
func (h *AdminHandler) HandleApproveReview(w http.ResponseWriter, r *http.Request) {
	if err := h.ReviewService.Approve(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "approve review", err)
		return
	}
	httpx.WriteOK(w)
}

// HandleRejectReview handles POST /api/admin/reviews/{id}/reject
//
//	@Summary		Reject a review
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			id	path		string	true	"Review ID"
//	@Success		200	{object}	lexsdk.OKResponse
//	@Failure		404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router			/api/admin/reviews/{id}/reject [post].
func (h *AdminHandler) HandleRejectReview(w http.ResponseWriter, r *http.Request) {
	if err := h.ReviewService.Reject(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "reject review", err)
		return
	}
	httpx.WriteOK(w)
}

// HandleDeleteReview handles DELETE /api/admin/reviews/{id}
//
//	@Summary		Delete a review
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			id	path		string	true	"Review ID"
//	@Success		200	{object}	lexsdk.OKResponse
//	@Failure		404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router			/api/admin/reviews/{id} [delete].
func (h *AdminHandler) HandleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.ReviewService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete review", err)
		return
	}
	httpx.WriteOK(w)
}

// HandleAnalyticsOverview handles GET /api/admin/analytics/overview
//
//	@Summary		Page view overview
//	@Description	Total, per-day counts and the top 10 paths over the last days.
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Param			days	query		int	false	"1..365, default 30"
//	@Success		200		{object}	lexsdk.AnalyticsOverview
//	@Failure		400		{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Router			/api/admin/analytics/overview [get].
func (h *AdminHandler) HandleAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", defaultOverviewDays, 1, maxOverviewDays)
	if !ok {
		writeInvalidParams(w)
		return
	}

	o := h.AnalyticsService.Overview(r.Context(), days)
	response := lexsdk.AnalyticsOverview{
		Total:    o.Total,
		PerDay:   make([]lexsdk.DayCount, len(o.PerDay)),
		TopPaths: make([]lexsdk.PathCount, len(o.TopPaths)),
	}
	for i, d := range o.PerDay {
		response.PerDay[i] = lexsdk.DayCount{Day: d.Day, Count: d.Count}
	}
	for i, p := range o.TopPaths {
		response.TopPaths[i] = lexsdk.PathCount{Path: p.Path, Count: p.Count}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleAnalyticsRecent handles GET /api/admin/analytics/recent
//
//	@Summary		Recent page views
//	@Tags			Admin
//	@Produce		json
//	@Security		CookieAuth
//	@Param			limit	query		int	false	"1..500, default 100"
//	@Success		200		{object}	lexsdk.PageViewsResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Router			/api/admin/analytics/recent [get].
func (h *AdminHandler) HandleAnalyticsRecent(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultRecentViews, 1, maxAdminLimit)
	if !ok {
		writeInvalidParams(w)
		return
	}

	views := h.AnalyticsService.Recent(r.Context(), limit)
	response := lexsdk.PageViewsResponse{Items: make([]lexsdk.PageView, len(views))}
	for i, v := range views {
		response.Items[i] = lexsdk.PageView{Path: v.Path, Referrer: v.Referrer, CreatedAt: v.CreatedAt}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}
