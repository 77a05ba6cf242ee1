package http

import (
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const (
	defaultPublicReviews = 12
	maxPublicReviews     = 50
)

// ReviewsHandler handles the public review endpoints.
type ReviewsHandler struct {
	ReviewService *service.ReviewService
}

// HandleList handles GET /api/reviews
//
//	@Summary		List approved reviews
//	@Tags			Reviews
//	@Produce		json
//	@Param			limit	query		int	false	"1..50, default 12"
//	@Success		200		{object}	lexsdk.ReviewsResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Router			/api/reviews [get].
func (h *ReviewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultPublicReviews, 1, maxPublicReviews)
	if !ok {
		writeInvalidParams(w)
		return
	}

	items := h.ReviewService.ListApproved(r.Context(), limit)
	httpx.WriteJSON(w, http.StatusOK, lexsdk.ReviewsResponse{Items: publicReviews(items)})
}

// HandleCreate handles POST /api/reviews
//
//	@Summary		Submit a review
//	@Description	Stores a review pending moderation and notifies the firm in the background.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.ReviewRequest	true	"Review"
//	@Success		200		{object}	lexsdk.CreatedResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"field: reason"
//	@Failure		403		{object}	lexsdk.ErrorResponse	"invalid csrf token"
//	@Failure		500		{object}	lexsdk.ErrorResponse	"internal error"
//	@Router			/api/reviews [post].
func (h *ReviewsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.ReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	id, err := h.ReviewService.Submit(r.Context(), service.ReviewRequest{
		Name:          req.Name,
		Rating:        req.Rating,
		Message:       req.Message,
		AcceptPrivacy: req.AcceptPrivacy,
	})
	if err != nil {
		writeServiceError(w, r, "submit review", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: id})
}

// publicReviews omits the moderation fields.
func publicReviews(items []domain.Review) []lexsdk.Review {
	out := make([]lexsdk.Review, len(items))
	for i, rv := range items {
		out[i] = lexsdk.Review{
			ID:        rv.ID,
			Name:      rv.Name,
			Rating:    rv.Rating,
			Message:   rv.Message,
			CreatedAt: rv.CreatedAt,
		}
	}
	return out
}

func moderationReviews(items []domain.Review) []lexsdk.Review {
	out := make([]lexsdk.Review, len(items))
	for i, rv := range items {
		out[i] = lexsdk.Review{
			ID:         rv.ID,
			Name:       rv.Name,
			Rating:     rv.Rating,
			Message:    rv.Message,
			Status:     string(rv.Status),
			CreatedAt:  rv.CreatedAt,
			ApprovedAt: rv.ApprovedAt,
		}
	}
	return out
}
