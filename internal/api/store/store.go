package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConflict reports a conditional write whose condition no longer held.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can hand out the same repositories bound to the
// transaction.
type Store interface {
	Users() Users
	AuthAudits() AuthAudits
	Contacts() Contacts
	Reports() Reports
	LegalServices() LegalServices
	Reviews() Reviews
	PageViews() PageViews
	Products() Products
	Carts() Carts
	Orders() Orders

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByEmail is used during login. Emails are matched lowercased.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). Zero
	// timestamps are filled with the current time.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpsertRootUser creates the root user or, when the email exists, resets
	// its password hash and role.
	UpsertRootUser(ctx context.Context, u domain.User) error

	// EnsureStaffUser creates an admin user if the email is unknown. An
	// existing row only gains a phone number when it has none; its password
	// and role are left alone.
	EnsureStaffUser(ctx context.Context, u domain.User) error
}

type AuthAudits interface {
	CreateAuthAudit(ctx context.Context, a domain.AuthAudit) error

	// DeleteAuthAuditsBefore removes rows created before cutoff and reports
	// how many were deleted.
	DeleteAuthAuditsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Contacts interface {
	CreateContactMessage(ctx context.Context, m domain.ContactMessage) error

	// ListContactMessages returns the newest messages first.
	ListContactMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error)
}

type Reports interface {
	CreateReport(ctx context.Context, r domain.Report) error

	// UpdateReportMetadata sets the optional id_type and details columns.
	UpdateReportMetadata(ctx context.Context, id, idType, details string) error

	// ListReports returns the newest reports first.
	ListReports(ctx context.Context, limit int) ([]domain.Report, error)
}

type LegalServices interface {
	// GetEnabledLegalService returns ErrNotFound for unknown or disabled slugs.
	GetEnabledLegalService(ctx context.Context, slug string) (domain.LegalService, error)

	// ListEnabledLegalServices returns enabled services ordered by name.
	ListEnabledLegalServices(ctx context.Context) ([]domain.LegalService, error)

	UpsertLegalService(ctx context.Context, s domain.LegalService) error
}

type Reviews interface {
	CreateReview(ctx context.Context, r domain.Review) error
	GetReviewByID(ctx context.Context, id string) (domain.Review, error)

	// ListApprovedReviews orders by approved_at desc (unset last), then
	// created_at desc.
	ListApprovedReviews(ctx context.Context, limit int) ([]domain.Review, error)

	// ListReviewsByStatus returns the newest reviews with the given status.
	ListReviewsByStatus(ctx context.Context, status domain.ReviewStatus, limit int) ([]domain.Review, error)

	// SetReviewStatus updates status and approved_at. Returns ErrNotFound
	// when no row matched.
	SetReviewStatus(ctx context.Context, id string, status domain.ReviewStatus, approvedAt *time.Time) error

	// DeleteReview returns ErrNotFound when no row matched.
	DeleteReview(ctx context.Context, id string) error
}

type PageViews interface {
	CreatePageView(ctx context.Context, v domain.PageView) error

	CountPageViewsSince(ctx context.Context, since time.Time) (int, error)

	// PageViewsPerDay groups by UTC day, oldest day first.
	PageViewsPerDay(ctx context.Context, since time.Time) ([]domain.DayCount, error)

	// TopPaths returns the most viewed paths, highest count first.
	TopPaths(ctx context.Context, since time.Time, limit int) ([]domain.PathCount, error)

	ListRecentPageViews(ctx context.Context, limit int) ([]domain.PageView, error)
}

type Products interface {
	CreateProduct(ctx context.Context, p domain.Product) error

	// UpdateProduct replaces every editable field. Returns ErrNotFound when
	// no row matched.
	UpdateProduct(ctx context.Context, p domain.Product) error

	// GetProduct returns active and inactive products alike.
	GetProduct(ctx context.Context, id string) (domain.Product, error)

	// ListActiveProducts orders featured products first, then newest.
	ListActiveProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)

	// DecrementStock takes qty units. Returns ErrConflict when fewer remain
	// and ErrNotFound when the product is gone.
	DecrementStock(ctx context.Context, id string, qty int, at time.Time) error
}

type Carts interface {
	// ListCartLines returns the user's cart joined with products, newest first.
	ListCartLines(ctx context.Context, userID string) ([]domain.CartLine, error)

	// GetCartLine returns ErrNotFound unless the item belongs to userID.
	GetCartLine(ctx context.Context, userID, id string) (domain.CartLine, error)

	// FindCartItem looks up the line for one product variant.
	FindCartItem(ctx context.Context, userID, productID, size, color string) (domain.CartItem, error)

	CreateCartItem(ctx context.Context, it domain.CartItem) error

	// SetCartItemQuantity returns ErrNotFound unless the item belongs to userID.
	SetCartItemQuantity(ctx context.Context, userID, id string, qty int, at time.Time) error

	// DeleteCartItem returns ErrNotFound unless the item belongs to userID.
	DeleteCartItem(ctx context.Context, userID, id string) error

	ClearCart(ctx context.Context, userID string) error
}

type Orders interface {
	// CreateOrder inserts the order and its items.
	CreateOrder(ctx context.Context, o domain.Order) error

	// GetOrder returns the order with its items. Returns ErrNotFound unless
	// it belongs to userID; an empty userID matches any owner.
	GetOrder(ctx context.Context, userID, id string) (domain.Order, error)

	// ListOrdersByUser returns the user's orders newest first, without items.
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)

	// ListOrders is the staff listing, newest first, without items.
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)

	// SetOrderStatus returns ErrNotFound when no row matched.
	SetOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error
}
