package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

type ordersRepo struct {
	db dbtx
}

const orderColumns = `id, user_id, user_email, status, total_uyu, shipping_encrypted, notes, created_at, updated_at`

const orderItemColumns = `id, order_id, product_id, product_name, product_price_uyu, quantity, size, color`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.UserEmail, &status, &o.TotalUYU, &o.ShippingEncrypted, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	o.Status = domain.OrderStatus(status)
	return o, err
}

// CreateOrder writes the order and its items. Callers wanting atomicity run
// it inside WithTx.
func (r *ordersRepo) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.UserID, o.UserEmail, string(o.Status), o.TotalUYU, o.ShippingEncrypted, o.Notes,
		o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	for _, it := range o.Items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO order_items (`+orderItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.ProductPriceUYU, it.Quantity, it.Size, it.Color,
		)
		if err != nil {
			return mapUniqueViolation(err)
		}
	}
	return nil
}

func (r *ordersRepo) GetOrder(ctx context.Context, userID, id string) (domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1 AND ($2 = '' OR user_id = $2)`, id, userID))
	if err != nil {
		return domain.Order{}, mapNotFound(err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var it domain.OrderItem
		err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPriceUYU,
			&it.Quantity, &it.Size, &it.Color)
		return it, err
	})
	return o, err
}

func (r *ordersRepo) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *ordersRepo) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(f.Status), f.Limit, f.Offset)
}

func (r *ordersRepo) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		return scanOrder(row)
	})
}

func (r *ordersRepo) SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), at.UTC(), id,
	))
}
