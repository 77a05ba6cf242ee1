package http

import (
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

// CartHandler serves the signed-in user's cart. Routes sit behind
// RequireAuth, so an identity is always present.
type CartHandler struct {
	CartService *service.CartService
}

func identity(r *http.Request) jwtx.Identity {
	id, _ := httpx.IdentityFromContext(r.Context())
	return id
}

// HandleGet handles GET /api/cart
//
//	@Summary	Get the cart
//	@Tags		Cart
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	lexsdk.CartResponse
//	@Failure	401	{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Router		/api/cart [get].
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cart, err := h.CartService.Get(r.Context(), identity(r).Subject)
	if err != nil {
		writeServiceError(w, r, "get cart", err)
		return
	}

	response := lexsdk.CartResponse{Items: make([]lexsdk.CartLine, len(cart.Lines)), TotalUYU: cart.TotalUYU}
	for i, l := range cart.Lines {
		response.Items[i] = lexsdk.CartLine{
			ID:          l.ID,
			Quantity:    l.Quantity,
			Size:        l.Size,
			Color:       l.Color,
			SubtotalUYU: l.Subtotal(),
			Product:     productJSON(l.Product),
		}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleAdd handles POST /api/cart/items
//
//	@Summary		Add to cart
//	@Description	Adding a variant already in the cart raises its quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.CartAddRequest	true	"Item"
//	@Success		200		{object}	lexsdk.CreatedResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"insufficient stock"
//	@Failure		401		{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Router			/api/cart/items [post].
func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.CartAddRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	id, err := h.CartService.Add(r.Context(), identity(r).Subject, service.CartAddRequest{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		writeServiceError(w, r, "add cart item", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: id})
}

// HandleUpdate handles PUT /api/cart/items/{id}
//
//	@Summary	Set a cart item quantity
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Param		id		path		string						true	"Cart item ID"
//	@Param		request	body		lexsdk.CartUpdateRequest	true	"Quantity"
//	@Success	200		{object}	lexsdk.OKResponse
//	@Failure	400		{object}	lexsdk.ErrorResponse	"insufficient stock"
//	@Failure	404		{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/cart/items/{id} [put].
func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.CartUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	if err := h.CartService.Update(r.Context(), identity(r).Subject, r.PathValue("id"), req.Quantity); err != nil {
		writeServiceError(w, r, "update cart item", err)
		return
	}
	httpx.WriteOK(w)
}

// HandleRemove handles DELETE /api/cart/items/{id}
//
//	@Summary	Remove a cart item
//	@Tags		Cart
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Param		id	path		string	true	"Cart item ID"
//	@Success	200	{object}	lexsdk.OKResponse
//	@Failure	404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/cart/items/{id} [delete].
func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.CartService.Remove(r.Context(), identity(r).Subject, r.PathValue("id")); err != nil {
		writeServiceError(w, r, "remove cart item", err)
		return
	}
	httpx.WriteOK(w)
}

// HandleClear handles DELETE /api/cart
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Success	200	{object}	lexsdk.OKResponse
//	@Router		/api/cart [delete].
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.CartService.Clear(r.Context(), identity(r).Subject); err != nil {
		writeServiceError(w, r, "clear cart", err)
		return
	}
	httpx.WriteOK(w)
}
