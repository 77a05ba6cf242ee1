package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type cartsRepo struct {
	db dbtx
}

const cartItemColumns = `id, user_id, product_id, quantity, size, color, created_at, updated_at`

const cartLineSelect = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.size, ci.color, ci.created_at, ci.updated_at,
		p.id, p.name, p.description, p.category, p.price_uyu, p.stock, p.images, p.sizes, p.colors,
		p.featured, p.active, p.created_at, p.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

func scanCartItem(row rowScanner, extra ...any) (domain.CartItem, error) {
	var (
		it                   domain.CartItem
		createdAt, updatedAt string
	)
	dest := append([]any{&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.Size, &it.Color, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.CartItem{}, err
	}

	var err error
	if it.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.CartItem{}, err
	}
	if it.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.CartItem{}, err
	}
	return it, nil
}

// cartLineRow scans the item columns first and hands the rest to scanProduct.
type cartLineRow struct {
	row  rowScanner
	item domain.CartItem
	err  error
}

func (c *cartLineRow) Scan(productDest ...any) error {
	c.item, c.err = scanCartItem(c.row, productDest...)
	return c.err
}

func scanCartLine(row rowScanner) (domain.CartLine, error) {
	cr := &cartLineRow{row: row}
	p, err := scanProduct(cr)
	if err != nil {
		return domain.CartLine{}, err
	}
	return domain.CartLine{CartItem: cr.item, Product: p}, nil
}

func (r *cartsRepo) ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := r.db.QueryContext(ctx,
		cartLineSelect+` WHERE ci.user_id = ? ORDER BY ci.created_at DESC, ci.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CartLine, 0)
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *cartsRepo) GetCartLine(ctx context.Context, userID, id string) (domain.CartLine, error) {
	l, err := scanCartLine(r.db.QueryRowContext(ctx,
		cartLineSelect+` WHERE ci.id = ? AND ci.user_id = ?`, id, userID))
	if err != nil {
		return domain.CartLine{}, mapNotFound(err)
	}
	return l, nil
}

func (r *cartsRepo) FindCartItem(ctx context.Context, userID, productID, size, color string) (domain.CartItem, error) {
	it, err := scanCartItem(r.db.QueryRowContext(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items
		WHERE user_id = ? AND product_id = ? AND size = ? AND color = ?`,
		userID, productID, size, color))
	if err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *cartsRepo) CreateCartItem(ctx context.Context, it domain.CartItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart_items (`+cartItemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.UserID, it.ProductID, it.Quantity, it.Size, it.Color,
		formatTime(it.CreatedAt), formatTime(it.UpdatedAt),
	)
	return mapUniqueViolation(err)
}

func (r *cartsRepo) SetCartItemQuantity(ctx context.Context, userID, id string, qty int, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		qty, formatTime(at), id, userID,
	))
}

func (r *cartsRepo) DeleteCartItem(ctx context.Context, userID, id string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *cartsRepo) ClearCart(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}
