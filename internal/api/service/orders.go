package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

// ErrEmptyCart is returned when an order is placed from an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// OrderListLimit caps the customer and staff order listings.
const OrderListLimit = 200

type OrderRequest struct {
	Shipping domain.ShippingPII
	Notes    string
}

// OrderView is an order with its shipping details opened. Decrypted is
// false when the blob could not be opened; Shipping is then empty.
type OrderView struct {
	domain.Order
	Shipping  domain.ShippingPII
	Decrypted bool
}

// OrderService turns carts into orders. Shipping details are sealed with
// the PII cipher.
type OrderService struct {
	Store    store.Store
	Cipher   *cryptox.PIICipher
	Notifier notify.Notifier
	Now      func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *OrderService) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Noop{}
	}
	return s.Notifier
}

func normalizeOrder(req OrderRequest) (OrderRequest, error) {
	sh := &req.Shipping
	sh.Name = clean(sh.Name)
	sh.Email = strings.TrimSpace(sh.Email)
	sh.Phone = strings.TrimSpace(sh.Phone)
	sh.Address = clean(sh.Address)
	sh.City = clean(sh.City)
	sh.Department = clean(sh.Department)
	sh.PostalCode = clean(sh.PostalCode)
	req.Notes = clean(req.Notes)

	checks := []error{
		checkLen("name", sh.Name, 2, 120),
		checkEmail("email", sh.Email),
		checkLen("phone", sh.Phone, 6, 40),
		checkLen("address", sh.Address, 5, 200),
		checkLen("city", sh.City, 2, 80),
		checkLen("department", sh.Department, 2, 80),
		checkOptionalLen("postalCode", sh.PostalCode, 0, 20),
		checkOptionalLen("notes", req.Notes, 0, 1000),
	}
	for _, err := range checks {
		if err != nil {
			return req, err
		}
	}
	return req, nil
}

// Place turns the caller's cart into a pending order. The order rows, the
// stock decrements and the cart clear commit together or not at all.
func (s *OrderService) Place(ctx context.Context, userID, userEmail string, req OrderRequest) (Receipt, error) {
	l := slogx.FromContext(ctx)

	req, err := normalizeOrder(req)
	if err != nil {
		return Receipt{}, err
	}

	sealed, err := s.Cipher.Encrypt(req.Shipping)
	if err != nil {
		l.Error("failed to seal shipping pii", slog.Any("error", err))
		return Receipt{}, fmt.Errorf("seal shipping: %w", err)
	}

	now := s.now()
	order := domain.Order{
		ID:                idx.NewAt(now).String(),
		UserID:            userID,
		UserEmail:         userEmail,
		Status:            domain.OrderPending,
		ShippingEncrypted: sealed,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		lines, err := tx.Carts().ListCartLines(ctx, userID)
		if err != nil {
			return fmt.Errorf("list cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		for _, line := range lines {
			if !line.Product.Active {
				return fmt.Errorf("%s: %w", line.Product.Name, ErrProductUnavailable)
			}
			err := tx.Products().DecrementStock(ctx, line.ProductID, line.Quantity, now)
			switch {
			case errors.Is(err, store.ErrConflict):
				return fmt.Errorf("%s: %w", line.Product.Name, ErrOutOfStock)
			case errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("%s: %w", line.Product.Name, ErrProductUnavailable)
			case err != nil:
				return fmt.Errorf("decrement stock: %w", err)
			}

			order.TotalUYU += line.Subtotal()
			order.Items = append(order.Items, domain.OrderItem{
				ID:              idx.NewAt(now).String(),
				OrderID:         order.ID,
				ProductID:       line.ProductID,
				ProductName:     line.Product.Name,
				ProductPriceUYU: line.Product.PriceUYU,
				Quantity:        line.Quantity,
				Size:            line.Size,
				Color:           line.Color,
			})
		}

		if err := tx.Orders().CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := tx.Carts().ClearCart(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmptyCart) && !errors.Is(err, ErrOutOfStock) && !errors.Is(err, ErrProductUnavailable) {
			l.Error("failed to place order", slog.Any("error", err))
		}
		return Receipt{}, err
	}
	l.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Int64("total_uyu", order.TotalUYU),
	)

	err = s.notifier().Notify(ctx, notify.Message{
		Subject: "Nuevo pedido " + order.ID,
		Text:    orderEmailText(order, req),
	})
	return Receipt{ID: order.ID, Notification: bestEffort(ctx, "order_email", err)}, nil
}

func orderEmailText(o domain.Order, req OrderRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido: %s\n", o.ID)
	fmt.Fprintf(&b, "Cliente: %s <%s>\n", req.Shipping.Name, req.Shipping.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n", req.Shipping.Phone)
	fmt.Fprintf(&b, "Dirección: %s, %s, %s\n\n", req.Shipping.Address, req.Shipping.City, req.Shipping.Department)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "%d x %s", it.Quantity, it.ProductName)
		if it.Size != "" || it.Color != "" {
			fmt.Fprintf(&b, " (%s %s)", it.Size, it.Color)
		}
		fmt.Fprintf(&b, " $%d\n", it.ProductPriceUYU*int64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%d UYU\n", o.TotalUYU)
	if req.Notes != "" {
		fmt.Fprintf(&b, "\nNotas: %s\n", req.Notes)
	}
	return b.String()
}

func (s *OrderService) view(ctx context.Context, o domain.Order) OrderView {
	v := OrderView{Order: o}
	if err := s.Cipher.Decrypt(o.ShippingEncrypted, &v.Shipping); err != nil {
		logUndecryptable(ctx, "order_id", o.ID, err)
		v.Shipping = domain.ShippingPII{}
	} else {
		v.Decrypted = true
	}
	return v
}

func (s *OrderService) views(ctx context.Context, orders []domain.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, s.view(ctx, o))
	}
	return out
}

// ListMine returns the caller's orders, newest first, without items.
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]OrderView, error) {
	orders, err := s.Store.Orders().ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.views(ctx, orders), nil
}

// Get returns one of the caller's orders with its items. Another user's
// order is reported missing.
func (s *OrderService) Get(ctx context.Context, userID, id string) (OrderView, error) {
	id, err := parseID(id)
	if err != nil {
		return OrderView{}, err
	}
	if userID == "" {
		return OrderView{}, store.ErrNotFound
	}
	o, err := s.Store.Orders().GetOrder(ctx, userID, id)
	if err != nil {
		return OrderView{}, err
	}
	return s.view(ctx, o), nil
}

// AdminList returns orders of every user, optionally narrowed by status.
func (s *OrderService) AdminList(ctx context.Context, status string, limit, offset int) ([]OrderView, error) {
	st := domain.OrderStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, invalid("status", "unknown status")
	}
	orders, err := s.Store.Orders().ListOrders(ctx, domain.OrderFilter{Status: st, Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.views(ctx, orders), nil
}

// SetStatus moves an order to status.
func (s *OrderService) SetStatus(ctx context.Context, id, status string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	st := domain.OrderStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return invalid("status", "unknown status")
	}
	if err := s.Store.Orders().SetOrderStatus(ctx, id, st, s.now()); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("order status changed", slog.String("order_id", id), slog.String("status", string(st)))
	return nil
}
