package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

const (
	maxProductPriceUYU = 10_000_000
	maxProductStock    = 100_000
)

type ProductRequest struct {
	Name        string
	Description string
	Category    string
	PriceUYU    int64
	Stock       int
	Images      []string
	Sizes       []string
	Colors      []string
	Featured    bool
	Active      bool
}

// CatalogService serves the public product catalog and its staff upkeep.
type CatalogService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *CatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Categories returns the fixed catalog sections.
func (s *CatalogService) Categories() []domain.Category {
	return domain.Categories()
}

// List returns active products. An unknown category is a validation error.
func (s *CatalogService) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	if f.Category != "" && !domain.ValidCategory(f.Category) {
		return nil, invalid("category", "unknown category")
	}
	items, err := s.Store.Products().ListActiveProducts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// Get returns an active product. Inactive products are reported missing.
func (s *CatalogService) Get(ctx context.Context, id string) (domain.Product, error) {
	id, err := parseID(id)
	if err != nil {
		return domain.Product{}, err
	}
	p, err := s.Store.Products().GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !p.Active {
		return domain.Product{}, store.ErrNotFound
	}
	return p, nil
}

func normalizeProduct(req ProductRequest) (ProductRequest, error) {
	req.Name = clean(req.Name)
	req.Description = clean(req.Description)
	req.Category = clean(req.Category)

	if err := checkLen("name", req.Name, 2, 120); err != nil {
		return req, err
	}
	if err := checkOptionalLen("description", req.Description, 0, 2000); err != nil {
		return req, err
	}
	if !domain.ValidCategory(req.Category) {
		return req, invalid("category", "unknown category")
	}
	if req.PriceUYU < 0 || req.PriceUYU > maxProductPriceUYU {
		return req, invalid("price", fmt.Sprintf("must be between 0 and %d", maxProductPriceUYU))
	}
	if req.Stock < 0 || req.Stock > maxProductStock {
		return req, invalid("stock", fmt.Sprintf("must be between 0 and %d", maxProductStock))
	}

	var err error
	if req.Images, err = cleanList("images", req.Images, 10, 500); err != nil {
		return req, err
	}
	if req.Sizes, err = cleanList("sizes", req.Sizes, 20, 20); err != nil {
		return req, err
	}
	if req.Colors, err = cleanList("colors", req.Colors, 20, 30); err != nil {
		return req, err
	}
	return req, nil
}

// Create adds a product and returns its id.
func (s *CatalogService) Create(ctx context.Context, req ProductRequest) (string, error) {
	req, err := normalizeProduct(req)
	if err != nil {
		return "", err
	}

	now := s.now()
	p := productFromRequest(req)
	p.ID = idx.NewAt(now).String()
	p.CreatedAt, p.UpdatedAt = now, now

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return "", fmt.Errorf("store product: %w", err)
	}
	slogx.FromContext(ctx).Info("product created", slog.String("product_id", p.ID), slog.String("category", p.Category))
	return p.ID, nil
}

// Update replaces a product's editable fields.
func (s *CatalogService) Update(ctx context.Context, id string, req ProductRequest) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	req, err = normalizeProduct(req)
	if err != nil {
		return err
	}

	p := productFromRequest(req)
	p.ID = id
	p.UpdatedAt = s.now()
	if err := s.Store.Products().UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update product: %w", err)
	}
	slogx.FromContext(ctx).Info("product updated", slog.String("product_id", id))
	return nil
}

func productFromRequest(req ProductRequest) domain.Product {
	return domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PriceUYU:    req.PriceUYU,
		Stock:       req.Stock,
		Images:      req.Images,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Featured:    req.Featured,
		Active:      req.Active,
	}
}
