package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type ordersRepo struct {
	db dbtx
}

const orderColumns = `id, user_id, user_email, status, total_uyu, shipping_encrypted, notes, created_at, updated_at`

const orderItemColumns = `id, order_id, product_id, product_name, product_price_uyu, quantity, size, color`

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o                    domain.Order
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.UserEmail, &status, &o.TotalUYU, &o.ShippingEncrypted, &o.Notes,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)

	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Order{}, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// CreateOrder writes the order and its items. Callers wanting atomicity run
// it inside WithTx.
func (r *ordersRepo) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.UserEmail, string(o.Status), o.TotalUYU, o.ShippingEncrypted, o.Notes,
		formatTime(o.CreatedAt), formatTime(o.UpdatedAt),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	for _, it := range o.Items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO order_items (`+orderItemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.ProductPriceUYU, it.Quantity, it.Size, it.Color,
		)
		if err != nil {
			return mapUniqueViolation(err)
		}
	}
	return nil
}

func (r *ordersRepo) GetOrder(ctx context.Context, userID, id string) (domain.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ? AND (? = '' OR user_id = ?)`,
		id, userID, userID))
	if err != nil {
		return domain.Order{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	o.Items = make([]domain.OrderItem, 0)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPriceUYU,
			&it.Quantity, &it.Size, &it.Color); err != nil {
			return domain.Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (r *ordersRepo) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *ordersRepo) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, string(f.Status), string(f.Status), f.Limit, f.Offset)
}

func (r *ordersRepo) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ordersRepo) SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(at), id,
	))
}
