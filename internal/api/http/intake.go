package http

import (
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

// IntakeHandler handles the public contact and report forms.
type IntakeHandler struct {
	IntakeService *service.IntakeService
}

// HandleContact handles POST /api/contact
//
//	@Summary		Submit contact form
//	@Description	Stores a contact message with its personal data encrypted and notifies the firm by email (best effort).
//	@Tags			Intake
//	@Accept			json
//	@Produce		json
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.ContactRequest	true	"Contact form"
//	@Success		200		{object}	lexsdk.CreatedResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"field: reason"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Failure		500		{object}	lexsdk.ErrorResponse	"internal error"
//	@Router			/api/contact [post].
func (h *IntakeHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.ContactRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	receipt, err := h.IntakeService.SubmitContact(r.Context(), service.ContactRequest{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Country:           req.Country,
		Department:        req.Department,
		Subject:           req.Subject,
		Subcategory:       req.Subcategory,
		SubcategoryDetail: req.SubcategoryDetail,
		Message:           req.Message,
		AcceptPrivacy:     req.AcceptPrivacy,
	})
	if err != nil {
		writeServiceError(w, r, "submit contact", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: receipt.ID})
}

// HandleReport handles POST /api/reports
//
//	@Summary		Request a report
//	@Description	Stores a paid report request. costoUyu must match the server price for tipo.
//	@Tags			Intake
//	@Accept			json
//	@Produce		json
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.ReportRequest	true	"Report request"
//	@Success		200		{object}	lexsdk.CreatedResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"field: reason, or invalid cost"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Failure		500		{object}	lexsdk.ErrorResponse	"internal error"
//	@Router			/api/reports [post].
func (h *IntakeHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.ReportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	receipt, err := h.IntakeService.SubmitReport(r.Context(), service.ReportRequest{
		Type:              req.Type,
		Country:           req.Country,
		Department:        req.Department,
		City:              req.City,
		CostUYU:           req.CostUYU,
		IDType:            req.IDType,
		IDNumber:          req.IDNumber,
		Email:             req.Email,
		Mobile:            req.Mobile,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Category:          req.Category,
		Subcategory:       req.Subcategory,
		SubcategoryDetail: req.SubcategoryDetail,
		Details:           req.Details,
		AcceptPrivacy:     req.AcceptPrivacy,
	})
	if err != nil {
		writeServiceError(w, r, "submit report", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: receipt.ID})
}

// HandleServices handles GET /api/services
//
//	@Summary		List priced services
//	@Description	Returns the enabled report types with their prices. Falls back to the built-in catalogue when pricing cannot be loaded.
//	@Tags			Intake
//	@Produce		json
//	@Success		200	{object}	lexsdk.ServicesResponse
//	@Router			/api/services [get].
func (h *IntakeHandler) HandleServices(w http.ResponseWriter, r *http.Request) {
	services := h.IntakeService.ListServices(r.Context())

	response := lexsdk.ServicesResponse{Items: make([]lexsdk.LegalService, len(services))}
	for i, s := range services {
		response.Items[i] = lexsdk.LegalService{
			Slug:        s.Slug,
			Name:        s.Name,
			Description: s.Description,
			BaseCostUYU: s.BaseCostUYU,
			LegalFeeUYU: s.LegalFeeUYU,
			TotalUYU:    s.TotalUYU(),
			Enabled:     s.Enabled,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}
