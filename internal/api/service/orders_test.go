package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

func validOrder() OrderRequest {
	return OrderRequest{
		Shipping: domain.ShippingPII{
			Name:       "Ana Pérez",
			Email:      "ana@example.com",
			Phone:      "099123456",
			Address:    "Av. 18 de Julio 1234",
			City:       "Montevideo",
			Department: "Montevideo",
		},
		Notes: "Tocar timbre",
	}
}

func TestOrderService_Place(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	n := &recordingNotifier{}
	now := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	carts := &CartService{Store: s}
	svc := &OrderService{Store: s, Cipher: newTestCipher(t), Notifier: n, Now: fixedClock(now)}

	pid := seedProduct(t, s, nil)
	_, err := carts.Add(ctx, "u-1", CartAddRequest{ProductID: pid, Quantity: 2, Size: "M", Color: "negro"})
	require.NoError(t, err)

	rcpt, err := svc.Place(ctx, "u-1", "ana@example.com", validOrder())
	require.NoError(t, err)
	require.True(t, rcpt.Notification.OK())

	sent := n.messages()
	require.Len(t, sent, 1)
	require.Equal(t, "Nuevo pedido "+rcpt.ID, sent[0].Subject)
	require.True(t, strings.Contains(sent[0].Text, "2 x Remera lisa (M negro) $1780"))

	p, err := s.Products().GetProduct(ctx, pid)
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)

	cart, err := carts.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Empty(t, cart.Lines)

	got, err := svc.Get(ctx, "u-1", rcpt.ID)
	require.NoError(t, err)
	require.True(t, got.Decrypted)
	require.Equal(t, "Ana Pérez", got.Shipping.Name)
	require.Equal(t, domain.OrderPending, got.Status)
	require.Equal(t, int64(1780), got.TotalUYU)
	require.Len(t, got.Items, 1)
	require.Equal(t, "Remera lisa", got.Items[0].ProductName)

	_, err = svc.Get(ctx, "u-2", rcpt.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	mine, err := svc.ListMine(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, svc.SetStatus(ctx, rcpt.ID, "shipped"))
	all, err := svc.AdminList(ctx, "shipped", 50, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, domain.OrderShipped, all[0].Status)

	none, err := svc.AdminList(ctx, "pending", 50, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestOrderService_PlaceEmptyCart(t *testing.T) {
	svc := &OrderService{Store: newTestStore(t), Cipher: newTestCipher(t)}

	_, err := svc.Place(context.Background(), "u-1", "ana@example.com", validOrder())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_PlaceRollsBackOnShortStock(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	t0 := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	svc := &OrderService{Store: s, Cipher: newTestCipher(t)}
	catalog := &CatalogService{Store: s}

	plenty := seedProduct(t, s, nil)
	scarce := seedProduct(t, s, func(r *ProductRequest) { r.Name = "Vestido corto"; r.Category = "vestidos" })

	// The newest line is processed first, so plenty is decremented before
	// scarce runs short.
	_, err := (&CartService{Store: s, Now: fixedClock(t0)}).Add(ctx, "u-1",
		CartAddRequest{ProductID: scarce, Quantity: 2, Size: "M", Color: "negro"})
	require.NoError(t, err)
	_, err = (&CartService{Store: s, Now: fixedClock(t0.Add(time.Minute))}).Add(ctx, "u-1",
		CartAddRequest{ProductID: plenty, Quantity: 3, Size: "M", Color: "negro"})
	require.NoError(t, err)

	upd := validProduct()
	upd.Name = "Vestido corto"
	upd.Category = "vestidos"
	upd.Stock = 1
	require.NoError(t, catalog.Update(ctx, scarce, upd))

	_, err = svc.Place(ctx, "u-1", "ana@example.com", validOrder())
	require.ErrorIs(t, err, ErrOutOfStock)
	require.ErrorContains(t, err, "Vestido corto")

	p, err := s.Products().GetProduct(ctx, plenty)
	require.NoError(t, err)
	require.Equal(t, 5, p.Stock)

	orders, err := s.Orders().ListOrdersByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Empty(t, orders)

	lines, err := s.Carts().ListCartLines(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
}

func TestOrderService_Validation(t *testing.T) {
	svc := &OrderService{Store: newTestStore(t), Cipher: newTestCipher(t)}

	cases := map[string]func(*OrderRequest){
		"name":       func(r *OrderRequest) { r.Shipping.Name = "A" },
		"email":      func(r *OrderRequest) { r.Shipping.Email = "ana" },
		"phone":      func(r *OrderRequest) { r.Shipping.Phone = "" },
		"address":    func(r *OrderRequest) { r.Shipping.Address = "Av" },
		"department": func(r *OrderRequest) { r.Shipping.Department = "" },
		"notes":      func(r *OrderRequest) { r.Notes = strings.Repeat("x", 1001) },
	}
	for field, mutate := range cases {
		req := validOrder()
		mutate(&req)
		_, err := svc.Place(context.Background(), "u-1", "ana@example.com", req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, field)
		require.Equal(t, field, verr.Field)
	}

	_, err := svc.AdminList(context.Background(), "lost", 10, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, svc.SetStatus(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV", "lost"), ErrInvalidInput)
	require.ErrorIs(t, svc.SetStatus(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV", "shipped"), store.ErrNotFound)
}

func TestOrderService_UndecryptableShipping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	pid := seedProduct(t, s, nil)
	_, err := (&CartService{Store: s}).Add(ctx, "u-1", CartAddRequest{ProductID: pid, Quantity: 1, Size: "S", Color: "negro"})
	require.NoError(t, err)

	rcpt, err := (&OrderService{Store: s, Cipher: newTestCipher(t)}).Place(ctx, "u-1", "ana@example.com", validOrder())
	require.NoError(t, err)

	other, err := cipherWithFill(0x11)
	require.NoError(t, err)
	views, err := (&OrderService{Store: s, Cipher: other}).AdminList(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, rcpt.ID, views[0].ID)
	require.False(t, views[0].Decrypted)
	require.Empty(t, views[0].Shipping.Name)
}
