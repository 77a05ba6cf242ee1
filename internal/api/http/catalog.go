package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const (
	defaultCatalogLimit = 24
	maxCatalogLimit     = 100
	maxCatalogOffset    = 10_000
)

// CatalogHandler serves the public catalog and the staff product upkeep.
type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleCategories handles GET /api/catalog/categories
//
//	@Summary	List catalog categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	lexsdk.CategoriesResponse
//	@Router		/api/catalog/categories [get].
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	cats := h.CatalogService.Categories()
	response := lexsdk.CategoriesResponse{Items: make([]lexsdk.Category, len(cats))}
	for i, c := range cats {
		response.Items[i] = lexsdk.Category{ID: c.ID, Name: c.Name}
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleList handles GET /api/catalog/products
//
//	@Summary		List active products
//	@Description	Featured products first, then newest.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string	false	"Category id"
//	@Param			featured	query		bool	false	"Only featured (true) or only regular (false)"
//	@Param			limit		query		int		false	"1..100, default 24"
//	@Param			offset		query		int		false	"0..10000"
//	@Success		200			{object}	lexsdk.ProductsResponse
//	@Failure		400			{object}	lexsdk.ErrorResponse	"invalid parameters"
//	@Router			/api/catalog/products [get].
func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", defaultCatalogLimit, 1, maxCatalogLimit)
	if !ok {
		writeInvalidParams(w)
		return
	}
	offset, ok := queryInt(r, "offset", 0, 0, maxCatalogOffset)
	if !ok {
		writeInvalidParams(w)
		return
	}
	f := domain.ProductFilter{Category: r.URL.Query().Get("category"), Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			writeInvalidParams(w)
			return
		}
		f.Featured = &featured
	}

	items, err := h.CatalogService.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, "list products", err)
		return
	}
	response := lexsdk.ProductsResponse{Items: make([]lexsdk.Product, len(items))}
	for i, p := range items {
		response.Items[i] = productJSON(p)
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGet handles GET /api/catalog/products/{id}
//
//	@Summary	Get an active product
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	lexsdk.Product
//	@Failure	404	{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/catalog/products/{id} [get].
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get product", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, productJSON(p))
}

// HandleCreate handles POST /api/admin/products
//
//	@Summary	Create a product
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Param		request	body		lexsdk.ProductRequest	true	"Product"
//	@Success	200		{object}	lexsdk.CreatedResponse
//	@Failure	400		{object}	lexsdk.ErrorResponse	"field: reason"
//	@Failure	401		{object}	lexsdk.ErrorResponse	"unauthorized"
//	@Failure	403		{object}	lexsdk.ErrorResponse	"forbidden"
//	@Router		/api/admin/products [post].
func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	id, err := h.CatalogService.Create(r.Context(), productRequest(req))
	if err != nil {
		writeServiceError(w, r, "create product", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, lexsdk.CreatedResponse{OK: true, ID: id})
}

// HandleUpdate handles PUT /api/admin/products/{id}
//
//	@Summary	Replace a product
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Security	CookieAuth
//	@Security	CSRFToken
//	@Param		id		path		string					true	"Product ID"
//	@Param		request	body		lexsdk.ProductRequest	true	"Product"
//	@Success	200		{object}	lexsdk.OKResponse
//	@Failure	400		{object}	lexsdk.ErrorResponse	"field: reason"
//	@Failure	404		{object}	lexsdk.ErrorResponse	"not found"
//	@Router		/api/admin/products/{id} [put].
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req lexsdk.ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteDecodeError(w, err)
		return
	}

	if err := h.CatalogService.Update(r.Context(), r.PathValue("id"), productRequest(req)); err != nil {
		writeServiceError(w, r, "update product", err)
		return
	}
	httpx.WriteOK(w)
}

func productRequest(req lexsdk.ProductRequest) service.ProductRequest {
	return service.ProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceUYU:    req.PriceUYU,
		Stock:       req.Stock,
		Images:      req.Images,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Featured:    req.Featured,
		Active:      req.Active,
	}
}

func productJSON(p domain.Product) lexsdk.Product {
	return lexsdk.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceUYU:    p.PriceUYU,
		Stock:       p.Stock,
		Images:      p.Images,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Featured:    p.Featured,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
