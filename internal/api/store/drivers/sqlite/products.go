package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
)

type productsRepo struct {
	db dbtx
}

const productColumns = `id, name, description, category, price_uyu, stock, images, sizes, colors,
	featured, active, created_at, updated_at`

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                     domain.Product
		images, sizes, colors string
		featured, active      int
		createdAt, updatedAt  string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.PriceUYU, &p.Stock,
		&images, &sizes, &colors, &featured, &active, &createdAt, &updatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.Featured = featured != 0
	p.Active = active != 0

	if p.Images, err = decodeList(images); err != nil {
		return domain.Product{}, err
	}
	if p.Sizes, err = decodeList(sizes); err != nil {
		return domain.Product{}, err
	}
	if p.Colors, err = decodeList(colors); err != nil {
		return domain.Product{}, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Product{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	images, sizes, colors, err := encodeProductLists(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Category, p.PriceUYU, p.Stock, images, sizes, colors,
		boolToInt(p.Featured), boolToInt(p.Active), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return mapUniqueViolation(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	images, sizes, colors, err := encodeProductLists(p)
	if err != nil {
		return err
	}
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE products SET
			name = ?, description = ?, category = ?, price_uyu = ?, stock = ?,
			images = ?, sizes = ?, colors = ?, featured = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Category, p.PriceUYU, p.Stock, images, sizes, colors,
		boolToInt(p.Featured), boolToInt(p.Active), formatTime(p.UpdatedAt), p.ID,
	))
}

func (r *productsRepo) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) ListActiveProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	var (
		where = []string{"active = 1"}
		args  []any
	)
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Featured != nil {
		where = append(where, "featured = ?")
		args = append(args, boolToInt(*f.Featured))
	}
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY featured DESC, created_at DESC, id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productsRepo) DecrementStock(ctx context.Context, id string, qty int, at time.Time) error {
	err := requireAffected(r.db.ExecContext(ctx,
		`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`,
		qty, formatTime(at), id, qty,
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

func encodeProductLists(p domain.Product) (images, sizes, colors string, err error) {
	if images, err = encodeList(p.Images); err != nil {
		return "", "", "", fmt.Errorf("encode images: %w", err)
	}
	if sizes, err = encodeList(p.Sizes); err != nil {
		return "", "", "", fmt.Errorf("encode sizes: %w", err)
	}
	if colors, err = encodeList(p.Colors); err != nil {
		return "", "", "", fmt.Errorf("encode colors: %w", err)
	}
	return images, sizes, colors, nil
}

// encodeList stores a string list as a JSON array; nil becomes [].
func encodeList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

func decodeList(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
