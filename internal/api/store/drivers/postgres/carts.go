package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

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

func cartItemDest(it *domain.CartItem) []any {
	return []any{&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.Size, &it.Color, &it.CreatedAt, &it.UpdatedAt}
}

func scanCartLine(row pgx.Row) (domain.CartLine, error) {
	var (
		l domain.CartLine
		p = &l.Product
	)
	dest := append(cartItemDest(&l.CartItem),
		&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceUYU, &p.Stock,
		&p.Images, &p.Sizes, &p.Colors, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	err := row.Scan(dest...)
	p.Images, p.Sizes, p.Colors = list(p.Images), list(p.Sizes), list(p.Colors)
	return l, err
}

func (r *cartsRepo) ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := r.db.Query(ctx,
		cartLineSelect+` WHERE ci.user_id = $1 ORDER BY ci.created_at DESC, ci.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CartLine, error) {
		return scanCartLine(row)
	})
}

func (r *cartsRepo) GetCartLine(ctx context.Context, userID, id string) (domain.CartLine, error) {
	l, err := scanCartLine(r.db.QueryRow(ctx, cartLineSelect+` WHERE ci.id = $1 AND ci.user_id = $2`, id, userID))
	if err != nil {
		return domain.CartLine{}, mapNotFound(err)
	}
	return l, nil
}

func (r *cartsRepo) FindCartItem(ctx context.Context, userID, productID, size, color string) (domain.CartItem, error) {
	var it domain.CartItem
	err := r.db.QueryRow(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4`,
		userID, productID, size, color,
	).Scan(cartItemDest(&it)...)
	if err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return it, nil
}

func (r *cartsRepo) CreateCartItem(ctx context.Context, it domain.CartItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (`+cartItemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		it.ID, it.UserID, it.ProductID, it.Quantity, it.Size, it.Color, it.CreatedAt.UTC(), it.UpdatedAt.UTC(),
	)
	return mapUniqueViolation(err)
}

func (r *cartsRepo) SetCartItemQuantity(ctx context.Context, userID, id string, qty int, at time.Time) error {
	return requireAffected(r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`,
		qty, at.UTC(), id, userID,
	))
}

func (r *cartsRepo) DeleteCartItem(ctx context.Context, userID, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *cartsRepo) ClearCart(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
