package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const defaultAdminOrders = 50

// OrdersHandler serves checkout and order history for signed-in users and
// the staff order desk.
type OrdersHandler struct {
	OrderService *service.OrderService
}

// HandlePlace handles POST /api/orders
//
//	@Summary		Place an order
//	@Description	Turns the cart into a pending order. Stock is reserved and the cart emptied in one transaction.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Security		CookieAuth
//	@Security		CSRFToken
//	@Param			request	body		lexsdk.OrderRequest		true	"Shipping details"
//	@Success		200		{object}	lexsdk.CreatedResponse
//	@Failure		400		{object}	lexsdk.ErrorResponse	"cart is empty"
//	@Failure		401		{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Router			/api/orders [post].
func (h *OrdersHandler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.OrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	id := identity(r)
	rcpt, err := h.OrderService.Place(r.Context(), id.Subject, id.Email, service.OrderRequest{
		Shipping: domain.ShippingPII{
			Name:       req.Shipping.Name,
			Email:      req.Shipping.Email,
			Phone:      req.Shipping.Phone,
			Address:    req.Shipping.Address,
			City:       req.Shipping.City,
			Department: req.Shipping.Department,
			PostalCode: req.Shipping.PostalCode,
		},
		Notes: req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, "place order", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: rcpt.ID})
}

// HandleListMine handles GET /api/orders
//
//	@Summary	List my orders
//	@Tags		Orders
//	@Produce	json
//	@Security	CookieAuth
//	@Success	200	{object}	lexsdk.OrdersResponse
//	@Failure	401	{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Router		/api/orders [get].
func (h *OrdersHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.OrderService.ListMine(r.Context(), identity(r).Subject)
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ordersJSON(views, false))
}

// HandleGet handles GET /api/orders/{id}
//
//	@Summary	Get one of my orders
//	@Tags		Orders
//	@Produce	json
//	@Security	CookieAuth
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	lexsdk.Order
//	@Failure	404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/orders/{id} [get].
func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.OrderService.Get(r.Context(), identity(r).Subject, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orderJSON(v, false))
}

// HandleAdminList handles GET /api/admin/orders
//
//	@Summary	List all orders
//	@Tags		Admin
//	@Produce	json
//	@Security	CookieAuth
//	@Param		status	query		string	false	"pending, confirmed, shipped, delivered or cancelled"
//	@Param		limit	query		int		false	"1..500, default 50"
//	@Param		offset	query		int		false	"0..10000"
//	@Success	200		{object}	lexsdk.OrdersResponse
//	@Failure	400		{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Failure	403		{object}	lexsdk.ErrorResponse	"forbidden"
//	@Router		/api/admin/orders [get].
func (h *OrdersHandler) HandleAdminList(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultAdminOrders, 1, maxAdminLimit)
	if !ok {
		writeInvalidParams(w)
		return
	}
	offset, ok := queryInt(r, "offset", 0, 0, maxCatalogOffset)
	if !ok {
		writeInvalidParams(w)
		return
	}

	views, err := h.OrderService.AdminList(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeInvalidParams(w)
			return
		}
		writeServiceError(w, r, "list orders", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ordersJSON(views, true))
}

// HandleSetStatus handles PUT /api/admin/orders/{id}/status
//
//	@Summary	Change an order's status
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Param		id		path		string						true	"Order ID"
//	@Param		request	body		lexsdk.OrderStatusRequest	true	"Status"
//	@Success	200		{object}	lexsdk.OKResponse
//	@Failure	400		{object}	lexsdk.ErrorResponse	"status: unknown status"
//	@Failure	404		{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/admin/orders/{id}/status [put].
func (h *OrdersHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.OrderStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	if err := h.OrderService.SetStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeServiceError(w, r, "set order status", err)
		return
	}
	httpx.WriteOK(w)
}

func ordersJSON(views []service.OrderView, staff bool) lexsdk.OrdersResponse {
	response := lexsdk.OrdersResponse{Items: make([]lexsdk.Order, len(views))}
	for i, v := range views {
		response.Items[i] = orderJSON(v, staff)
	}
	return response
}

// orderJSON renders an order. The account email is only shown to staff.
func orderJSON(v service.OrderView, staff bool) lexsdk.Order {
	o := lexsdk.Order{
		ID:       v.ID,
		Status:   string(v.Status),
		TotalUYU: v.TotalUYU,
		Shipping: lexsdk.Shipping{
			Name:       v.Shipping.Name,
			Email:      v.Shipping.Email,
			Phone:      v.Shipping.Phone,
			Address:    v.Shipping.Address,
			City:       v.Shipping.City,
			Department: v.Shipping.Department,
			PostalCode: v.Shipping.PostalCode,
		},
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if staff {
		o.UserEmail = v.UserEmail
	}
	for _, it := range v.Items {
		o.Items = append(o.Items, lexsdk.OrderItem{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductPriceUYU: it.ProductPriceUYU,
			Quantity:        it.Quantity,
			Size:            it.Size,
			Color:           it.Color,
		})
	}
	return o
}
