package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

type productsRepo struct {
	db dbtx
}

const productColumns = `id, name, description, category, price_uyu, stock, images, sizes, colors,
	featured, active, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceUYU, &p.Stock,
		&p.Images, &p.Sizes, &p.Colors, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	p.Images, p.Sizes, p.Colors = list(p.Images), list(p.Sizes), list(p.Colors)
	return p, err
}

// list keeps empty arrays non-nil both ways; a nil slice would encode as NULL.
func list(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Description, p.Category, p.PriceUYU, p.Stock,
		list(p.Images), list(p.Sizes), list(p.Colors), p.Featured, p.Active,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return mapUniqueViolation(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE products SET
			name = $1, description = $2, category = $3, price_uyu = $4, stock = $5,
			images = $6, sizes = $7, colors = $8, featured = $9, active = $10, updated_at = $11
		WHERE id = $12`,
		p.Name, p.Description, p.Category, p.PriceUYU, p.Stock,
		list(p.Images), list(p.Sizes), list(p.Colors), p.Featured, p.Active, p.UpdatedAt.UTC(), p.ID,
	))
}

func (r *productsRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) ListActiveProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	var (
		where = []string{"active"}
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY featured DESC, created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		productColumns, strings.Join(where, " AND "), len(args)-1, len(args)), args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		return scanProduct(row)
	})
}

func (r *productsRepo) DecrementStock(ctx context.Context, id string, qty int, at time.Time) error {
	err := requireAffected(r.db.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3 AND stock >= $1`,
		qty, at.UTC(), id,
	))
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	// Tell a short stock apart from a missing product.
	if _, err := r.GetProduct(ctx, id); err != nil {
		return err
	}
	return store.ErrConflict
}
