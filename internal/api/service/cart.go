package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

var (
	// ErrProductUnavailable is returned when a product is inactive or gone.
	ErrProductUnavailable = errors.New("product unavailable")

	// ErrOutOfStock is returned when a quantity exceeds the product stock.
	ErrOutOfStock = errors.New("insufficient stock")
)

const maxCartQuantity = 99

type CartAddRequest struct {
	ProductID string
	Quantity  int
	Size      string
	Color     string
}

// Cart is a user's cart priced at current product prices.
type Cart struct {
	Lines    []domain.CartLine
	TotalUYU int64
}

// CartService manages the signed-in user's cart. Every call is scoped to
// the caller's user id.
type CartService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *CartService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *CartService) Get(ctx context.Context, userID string) (Cart, error) {
	lines, err := s.Store.Carts().ListCartLines(ctx, userID)
	if err != nil {
		return Cart{}, fmt.Errorf("list cart: %w", err)
	}
	c := Cart{Lines: lines}
	for _, l := range lines {
		c.TotalUYU += l.Subtotal()
	}
	return c, nil
}

func checkQuantity(qty int) error {
	if qty < 1 || qty > maxCartQuantity {
		return invalid("quantity", fmt.Sprintf("must be between 1 and %d", maxCartQuantity))
	}
	return nil
}

// checkVariant requires size and color to be offered by the product when it
// lists any.
func checkVariant(p domain.Product, size, color string) error {
	if err := checkOptionalLen("size", size, 0, 20); err != nil {
		return err
	}
	if err := checkOptionalLen("color", color, 0, 30); err != nil {
		return err
	}
	if len(p.Sizes) > 0 && !slices.Contains(p.Sizes, size) {
		return invalid("size", "not offered for this product")
	}
	if len(p.Colors) > 0 && !slices.Contains(p.Colors, color) {
		return invalid("color", "not offered for this product")
	}
	return nil
}

// Add puts a product variant in the cart. Adding a variant already in the
// cart raises its quantity. Returns the cart item id.
func (s *CartService) Add(ctx context.Context, userID string, req CartAddRequest) (string, error) {
	req.Size = clean(req.Size)
	req.Color = clean(req.Color)
	if err := checkQuantity(req.Quantity); err != nil {
		return "", err
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrProductUnavailable
		}
		return "", err
	}

	p, err := s.Store.Products().GetProduct(ctx, productID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "", ErrProductUnavailable
	case err != nil:
		return "", fmt.Errorf("get product: %w", err)
	case !p.Active:
		return "", ErrProductUnavailable
	}
	if err := checkVariant(p, req.Size, req.Color); err != nil {
		return "", err
	}

	now := s.now()
	existing, err := s.Store.Carts().FindCartItem(ctx, userID, p.ID, req.Size, req.Color)
	switch {
	case err == nil:
		qty := existing.Quantity + req.Quantity
		if err := checkQuantity(qty); err != nil {
			return "", err
		}
		if qty > p.Stock {
			return "", ErrOutOfStock
		}
		if err := s.Store.Carts().SetCartItemQuantity(ctx, userID, existing.ID, qty, now); err != nil {
			return "", fmt.Errorf("update cart item: %w", err)
		}
		return existing.ID, nil
	case !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("find cart item: %w", err)
	}

	if req.Quantity > p.Stock {
		return "", ErrOutOfStock
	}
	it := domain.CartItem{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		ProductID: p.ID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Carts().CreateCartItem(ctx, it); err != nil {
		return "", fmt.Errorf("store cart item: %w", err)
	}
	slogx.FromContext(ctx).Debug("cart item added",
		slog.String("cart_item_id", it.ID),
		slog.String("product_id", p.ID),
	)
	return it.ID, nil
}

// Update sets the quantity of one of the caller's cart items.
func (s *CartService) Update(ctx context.Context, userID, itemID string, qty int) error {
	itemID, err := parseID(itemID)
	if err != nil {
		return err
	}
	if err := checkQuantity(qty); err != nil {
		return err
	}

	line, err := s.Store.Carts().GetCartLine(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if qty > line.Product.Stock {
		return ErrOutOfStock
	}
	return s.Store.Carts().SetCartItemQuantity(ctx, userID, itemID, qty, s.now())
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	itemID, err := parseID(itemID)
	if err != nil {
		return err
	}
	return s.Store.Carts().DeleteCartItem(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.Store.Carts().ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
