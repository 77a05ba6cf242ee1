package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/lexsdk"
)

const productBody = `{"name":"Remera lisa","category":"remeras","priceUYU":890,"stock":5,` +
	`"sizes":["S","M"],"colors":["negro"],"active":true}`

const orderBody = `{"shipping":{"name":"Ana Pérez","email":"ana@example.com","phone":"099123456",` +
	`"address":"Av. 18 de Julio 1234","city":"Montevideo","department":"Montevideo"}}`

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func createProduct(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := serve(env.router, request(http.MethodPost, "/api/admin/products", productBody, env.sessionFor(t, domain.RoleAdmin)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[lexsdk.CreatedResponse](t, rec.Body.Bytes()).ID
}

func TestAccountGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	cases := []struct {
		name    string
		session *http.Cookie
		want    int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"user role", env.sessionFor(t, domain.RoleUser), http.StatusOK},
		{"admin role", env.sessionFor(t, domain.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tc.session != nil {
				cookies = append(cookies, tc.session)
			}
			rec := serve(env.router, request(http.MethodGet, "/api/cart", "", cookies...))
			require.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("user role stays out of staff routes", func(t *testing.T) {
		rec := serve(env.router, request(http.MethodPost, "/api/admin/products", productBody, env.sessionFor(t, domain.RoleUser)))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("cart writes need the csrf header", func(t *testing.T) {
		req := request(http.MethodDelete, "/api/cart", "", env.sessionFor(t, domain.RoleUser))
		req.Header.Del(httpx.CSRFHeader)
		rec := serve(env.router, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	id := createProduct(t, env)

	rec := serve(env.router, request(http.MethodGet, "/api/catalog/categories", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[lexsdk.CategoriesResponse](t, rec.Body.Bytes()).Items, 6)

	rec = serve(env.router, request(http.MethodGet, "/api/catalog/products?category=remeras", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[lexsdk.ProductsResponse](t, rec.Body.Bytes())
	require.Len(t, list.Items, 1)
	require.Equal(t, id, list.Items[0].ID)

	rec = serve(env.router, request(http.MethodGet, "/api/catalog/products/"+id, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(890), decodeBody[lexsdk.Product](t, rec.Body.Bytes()).PriceUYU)

	for _, q := range []string{"?limit=0", "?limit=101", "?offset=-1", "?featured=maybe", "?category=sombreros"} {
		rec := serve(env.router, request(http.MethodGet, "/api/catalog/products"+q, ""))
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec = serve(env.router, request(http.MethodGet, "/api/catalog/products/nope", ""))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	pid := createProduct(t, env)
	user := env.sessionFor(t, domain.RoleUser)

	rec := serve(env.router, request(http.MethodPost, "/api/orders", orderBody, user))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"cart is empty"}`, rec.Body.String())

	rec = serve(env.router, request(http.MethodPost, "/api/cart/items",
		`{"productId":"`+pid+`","quantity":9,"size":"M","color":"negro"}`, user))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"insufficient stock"}`, rec.Body.String())

	rec = serve(env.router, request(http.MethodPost, "/api/cart/items",
		`{"productId":"`+pid+`","quantity":2,"size":"M","color":"negro"}`, user))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(env.router, request(http.MethodGet, "/api/cart", "", user))
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeBody[lexsdk.CartResponse](t, rec.Body.Bytes())
	require.Len(t, cart.Items, 1)
	require.Equal(t, int64(1780), cart.TotalUYU)

	// Another account sees its own empty cart.
	rec = serve(env.router, request(http.MethodGet, "/api/cart", "", env.sessionFor(t, domain.RoleAdmin)))
	require.Empty(t, decodeBody[lexsdk.CartResponse](t, rec.Body.Bytes()).Items)

	rec = serve(env.router, request(http.MethodPost, "/api/orders", orderBody, user))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	orderID := decodeBody[lexsdk.CreatedResponse](t, rec.Body.Bytes()).ID

	p, err := env.store.Products().GetProduct(ctx, pid)
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)

	rec = serve(env.router, request(http.MethodGet, "/api/cart", "", user))
	require.Empty(t, decodeBody[lexsdk.CartResponse](t, rec.Body.Bytes()).Items)

	rec = serve(env.router, request(http.MethodGet, "/api/orders/"+orderID, "", user))
	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody[lexsdk.Order](t, rec.Body.Bytes())
	require.Equal(t, "pending", order.Status)
	require.Equal(t, "Ana Pérez", order.Shipping.Name)
	require.Empty(t, order.UserEmail)
	require.Len(t, order.Items, 1)

	rec = serve(env.router, request(http.MethodGet, "/api/orders/"+orderID, "", env.sessionFor(t, domain.RoleAdmin)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	admin := env.sessionFor(t, domain.RoleAdmin)
	rec = serve(env.router, request(http.MethodPut, "/api/admin/orders/"+orderID+"/status", `{"status":"shipped"}`, admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(env.router, request(http.MethodGet, "/api/admin/orders?status=shipped", "", admin))
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[lexsdk.OrdersResponse](t, rec.Body.Bytes())
	require.Len(t, all.Items, 1)
	require.Equal(t, "user@x.example", all.Items[0].UserEmail)

	rec = serve(env.router, request(http.MethodGet, "/api/admin/orders?status=lost", "", admin))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(env.router, request(http.MethodGet, "/api/orders", "", user))
	require.Len(t, decodeBody[lexsdk.OrdersResponse](t, rec.Body.Bytes()).Items, 1)
}

func TestRouterChainReachesLateRoutes(t *testing.T) {
	t.Parallel()

	r, err := NewRouter(nil, httpx.NewCookiePolicy("dev"), httpx.NewCORSConfig("https://estudio.example"),
		httpx.DefaultRateLimits(), false, "test", nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NotNil(t, r.handler, "chain is built with the router")

	// Routes registered after the chain was built still run behind it.
	r.Mux.HandleFunc("GET /late", func(w http.ResponseWriter, _ *http.Request) { httpx.WriteOK(w) })
	for range 2 {
		rec := serve(r, request(http.MethodGet, "/late", ""))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	}
}

func TestShopSDKRoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.client(t)
	ctx := context.Background()

	_, err := client.Login(ctx, lexsdk.LoginRequest{Email: rootEmail, Password: rootPassword})
	require.NoError(t, err)

	pid, err := client.CreateProduct(ctx, lexsdk.ProductRequest{
		Name: "Buzo canguro", Category: "buzos", PriceUYU: 1500, Stock: 2, Active: true,
	})
	require.NoError(t, err)

	products, err := client.ListProducts(ctx, "buzos", 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)

	itemID, err := client.AddToCart(ctx, lexsdk.CartAddRequest{ProductID: pid, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, client.UpdateCartItem(ctx, itemID, 2))

	orderID, err := client.PlaceOrder(ctx, lexsdk.OrderRequest{Shipping: lexsdk.Shipping{
		Name: "Ana Pérez", Email: "ana@example.com", Phone: "099123456",
		Address: "Av. 18 de Julio 1234", City: "Montevideo", Department: "Montevideo",
	}})
	require.NoError(t, err)

	order, err := client.GetOrder(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, int64(3000), order.TotalUYU)

	require.NoError(t, client.SetOrderStatus(ctx, orderID, "confirmed"))
	orders, err := client.AdminListOrders(ctx, "confirmed")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, rootEmail, orders[0].UserEmail)

	_, err = client.AddToCart(ctx, lexsdk.CartAddRequest{ProductID: pid, Quantity: 1})
	var apiErr *lexsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
