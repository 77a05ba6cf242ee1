package lexsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListCategories returns the catalog sections.
func (c *SDKClient) ListCategories(ctx context.Context) ([]Category, error) {
	var out CategoriesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/catalog/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ListProducts returns active products. Empty category and zero limit use
// the server defaults.
func (c *SDKClient) ListProducts(ctx context.Context, category string, limit, offset int) ([]Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/catalog/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out ProductsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *SDKClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/catalog/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct adds a product and returns its id. Staff only.
func (c *SDKClient) CreateProduct(ctx context.Context, req ProductRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/products", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateProduct replaces a product. Staff only.
func (c *SDKClient) UpdateProduct(ctx context.Context, id string, req ProductRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(id), req, nil)
}

func (c *SDKClient) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart returns the cart item id.
func (c *SDKClient) AddToCart(ctx context.Context, req CartAddRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/cart/items", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *SDKClient) UpdateCartItem(ctx context.Context, id string, quantity int) error {
	return c.doJSON(ctx, http.MethodPut, "/api/cart/items/"+url.PathEscape(id), CartUpdateRequest{Quantity: quantity}, nil)
}

func (c *SDKClient) RemoveCartItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cart/items/"+url.PathEscape(id), nil, nil)
}

func (c *SDKClient) ClearCart(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

// PlaceOrder turns the cart into an order and returns its id.
func (c *SDKClient) PlaceOrder(ctx context.Context, req OrderRequest) (string, error) {
	var out CreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *SDKClient) ListOrders(ctx context.Context) ([]Order, error) {
	var out OrdersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *SDKClient) GetOrder(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListOrders lists orders of every account. Empty status lists all.
func (c *SDKClient) AdminListOrders(ctx context.Context, status string) ([]Order, error) {
	path := "/api/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out OrdersResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *SDKClient) SetOrderStatus(ctx context.Context, id, status string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id)+"/status",
		OrderStatusRequest{Status: status}, nil)
}
