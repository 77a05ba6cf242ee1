// Package storetest holds the behavioural suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns a freshly migrated, empty store. The suite does not close it.
type Factory func(t *testing.T) store.Store

// Run exercises every repository of the store returned by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("AuthAudits", func(t *testing.T) { testAuthAudits(t, newStore(t)) })
	t.Run("Contacts", func(t *testing.T) { testContacts(t, newStore(t)) })
	t.Run("Reports", func(t *testing.T) { testReports(t, newStore(t)) })
	t.Run("LegalServices", func(t *testing.T) { testLegalServices(t, newStore(t)) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, newStore(t)) })
	t.Run("PageViews", func(t *testing.T) { testPageViews(t, newStore(t)) })
	t.Run("WithTx", func(t *testing.T) { testWithTx(t, newStore(t)) })
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore(t)) })
	t.Run("Carts", func(t *testing.T) { testCarts(t, newStore(t)) })
	t.Run("Orders", func(t *testing.T) { testOrders(t, newStore(t)) })
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	users := s.Users()

	_, err := users.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, users.UpsertRootUser(ctx, domain.User{
		ID: idx.New().String(), Email: "Root@Example.com", PasswordHash: "h1", Role: domain.RoleRoot,
	}))
	root, err := users.GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, "root@example.com", root.Email)
	require.Equal(t, domain.RoleRoot, root.Role)

	// Root upsert resets the password hash but keeps the row.
	require.NoError(t, users.UpsertRootUser(ctx, domain.User{
		ID: idx.New().String(), Email: "root@example.com", PasswordHash: "h2", Role: domain.RoleRoot,
	}))
	again, err := users.GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, root.ID, again.ID)
	require.Equal(t, "h2", again.PasswordHash)

	// Staff ensure only fills an empty phone.
	require.NoError(t, users.EnsureStaffUser(ctx, domain.User{
		ID: idx.New().String(), Email: "admin@example.com", PasswordHash: "a1", Role: domain.RoleAdmin,
	}))
	require.NoError(t, users.EnsureStaffUser(ctx, domain.User{
		ID: idx.New().String(), Email: "admin@example.com", Phone: "59899111222", PasswordHash: "a2", Role: domain.RoleAdmin,
	}))
	require.NoError(t, users.EnsureStaffUser(ctx, domain.User{
		ID: idx.New().String(), Email: "admin@example.com", Phone: "11111111", PasswordHash: "a3", Role: domain.RoleAdmin,
	}))
	admin, err := users.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, "59899111222", admin.Phone)
	require.Equal(t, "a1", admin.PasswordHash)

	err = users.CreateUser(ctx, domain.User{
		ID: idx.New().String(), Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleUser,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	joined := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, users.CreateUser(ctx, domain.User{
		ID: idx.New().String(), Email: "client@example.com", PasswordHash: "c1", Role: domain.RoleUser,
		CreatedAt: joined,
	}))
	client, err := users.GetUserByEmail(ctx, "client@example.com")
	require.NoError(t, err)
	require.True(t, client.CreatedAt.Equal(joined), "caller supplied created_at is kept")
	require.True(t, client.UpdatedAt.Equal(joined))
}

func testAuthAudits(t *testing.T, s store.Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, age := range []time.Duration{100 * 24 * time.Hour, 91 * 24 * time.Hour, time.Hour} {
		require.NoError(t, s.AuthAudits().CreateAuthAudit(ctx, domain.AuthAudit{
			ID:        idx.New().String(),
			Email:     "a@example.com",
			IP:        "203.0.113.7",
			UserAgent: "test",
			Success:   age == time.Hour,
			CreatedAt: now.Add(-age),
		}))
	}

	n, err := s.AuthAudits().DeleteAuthAuditsBefore(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = s.AuthAudits().DeleteAuthAuditsBefore(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func testContacts(t *testing.T, s store.Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, s.Contacts().CreateContactMessage(ctx, domain.ContactMessage{
			ID:           idx.NewAt(base.Add(time.Duration(i) * time.Minute)).String(),
			Subject:      "consulta-general",
			PIIEncrypted: "n.t.c",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.Contacts().ListContactMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
	require.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	require.Equal(t, "n.t.c", got[0].PIIEncrypted)
}

func testReports(t *testing.T, s store.Store) {
	ctx := context.Background()
	rep := domain.Report{
		ID:           idx.New().String(),
		ReportType:   "defensa-penal",
		Country:      "Uruguay",
		Department:   "Montevideo",
		City:         "Centro",
		CostUYU:      9900,
		PIIEncrypted: "n.t.c",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.Reports().CreateReport(ctx, rep))
	require.NoError(t, s.Reports().UpdateReportMetadata(ctx, rep.ID, "ci", "urgent"))
	require.ErrorIs(t, s.Reports().UpdateReportMetadata(ctx, "missing", "ci", ""), store.ErrNotFound)

	got, err := s.Reports().ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ci", got[0].IDType)
	require.Equal(t, "urgent", got[0].Details)
	require.EqualValues(t, 9900, got[0].CostUYU)
	require.Equal(t, "Centro", got[0].City)
}

func testLegalServices(t *testing.T, s store.Store) {
	ctx := context.Background()
	ls := s.LegalServices()

	require.NoError(t, ls.UpsertLegalService(ctx, domain.LegalService{
		Slug: "test-service", Name: "Test", BaseCostUYU: 1000, LegalFeeUYU: 500, Enabled: true,
	}))
	got, err := ls.GetEnabledLegalService(ctx, "test-service")
	require.NoError(t, err)
	require.EqualValues(t, 1500, got.TotalUYU())

	require.NoError(t, ls.UpsertLegalService(ctx, domain.LegalService{
		Slug: "test-service", Name: "Test", BaseCostUYU: 1000, LegalFeeUYU: 500, Enabled: false,
	}))
	_, err = ls.GetEnabledLegalService(ctx, "test-service")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = ls.GetEnabledLegalService(ctx, "does-not-exist")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := ls.ListEnabledLegalServices(ctx)
	require.NoError(t, err)
	for _, svc := range all {
		require.True(t, svc.Enabled)
		require.NotEqual(t, "test-service", svc.Slug)
	}
}

func testReviews(t *testing.T, s store.Store) {
	ctx := context.Background()
	rs := s.Reviews()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mk := func(name string, offset time.Duration) domain.Review {
		rv := domain.Review{
			ID:        idx.NewAt(base.Add(offset)).String(),
			Name:      name,
			Rating:    5,
			Message:   "Excelente atención.",
			Status:    domain.ReviewPending,
			CreatedAt: base.Add(offset),
		}
		require.NoError(t, rs.CreateReview(ctx, rv))
		return rv
	}

	first := mk("first", 0)
	second := mk("second", time.Hour)
	third := mk("third", 2*time.Hour)

	pending, err := rs.ListReviewsByStatus(ctx, domain.ReviewPending, 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, third.ID, pending[0].ID)

	approvedLate := base.Add(10 * time.Hour)
	approvedEarly := base.Add(5 * time.Hour)
	require.NoError(t, rs.SetReviewStatus(ctx, first.ID, domain.ReviewApproved, &approvedLate))
	require.NoError(t, rs.SetReviewStatus(ctx, second.ID, domain.ReviewApproved, &approvedEarly))
	require.NoError(t, rs.SetReviewStatus(ctx, third.ID, domain.ReviewRejected, nil))

	approved, err := rs.ListApprovedReviews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	require.Equal(t, first.ID, approved[0].ID)
	require.Equal(t, second.ID, approved[1].ID)
	require.NotNil(t, approved[0].ApprovedAt)
	require.True(t, approved[0].ApprovedAt.Equal(approvedLate))

	rejected, err := rs.GetReviewByID(ctx, third.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReviewRejected, rejected.Status)
	require.Nil(t, rejected.ApprovedAt)

	require.ErrorIs(t, rs.SetReviewStatus(ctx, "missing", domain.ReviewApproved, nil), store.ErrNotFound)
	require.NoError(t, rs.DeleteReview(ctx, third.ID))
	require.ErrorIs(t, rs.DeleteReview(ctx, third.ID), store.ErrNotFound)
	_, err = rs.GetReviewByID(ctx, third.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testPageViews(t *testing.T, s store.Store) {
	ctx := context.Background()
	pv := s.PageViews()
	day1 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	add := func(path string, at time.Time) {
		require.NoError(t, pv.CreatePageView(ctx, domain.PageView{
			ID: idx.NewAt(at).String(), Path: path, CreatedAt: at,
		}))
	}
	add("/old", day1.Add(-30*24*time.Hour))
	add("/", day1)
	add("/contacto", day1.Add(time.Minute))
	add("/", day2)

	since := day1.Add(-time.Hour)

	total, err := pv.CountPageViewsSince(ctx, since)
	require.NoError(t, err)
	require.Equal(t, 3, total)

	perDay, err := pv.PageViewsPerDay(ctx, since)
	require.NoError(t, err)
	require.Equal(t, []domain.DayCount{
		{Day: "2026-05-01", Count: 2},
		{Day: "2026-05-02", Count: 1},
	}, perDay)

	top, err := pv.TopPaths(ctx, since, 10)
	require.NoError(t, err)
	require.Equal(t, []domain.PathCount{
		{Path: "/", Count: 2},
		{Path: "/contacto", Count: 1},
	}, top)

	recent, err := pv.ListRecentPageViews(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "/", recent[0].Path)
	require.True(t, recent[0].CreatedAt.Equal(day2))
}

func testWithTx(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.PageViews().CreatePageView(ctx, domain.PageView{
			ID: idx.New().String(), Path: "/rolled-back", CreatedAt: time.Now().UTC(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		return tx.PageViews().CreatePageView(ctx, domain.PageView{
			ID: idx.New().String(), Path: "/committed", CreatedAt: time.Now().UTC(),
		})
	})
	require.NoError(t, err)

	recent, err := s.PageViews().ListRecentPageViews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "/committed", recent[0].Path)
}

func newProduct(t *testing.T, s store.Store, name, category string, price int64, stock int, featured bool, at time.Time) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:        idx.NewAt(at).String(),
		Name:      name,
		Category:  category,
		PriceUYU:  price,
		Stock:     stock,
		Images:    []string{"/uploads/" + name + ".png"},
		Sizes:     []string{"S", "M"},
		Featured:  featured,
		Active:    true,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, s.Products().CreateProduct(context.Background(), p))
	return p
}

func testProducts(t *testing.T, s store.Store) {
	ctx := context.Background()
	ps := s.Products()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	plain := newProduct(t, s, "remera", "remeras", 900, 5, false, base)
	star := newProduct(t, s, "buzo", "buzos", 1500, 2, true, base.Add(-time.Hour))
	newer := newProduct(t, s, "musculosa", "remeras", 700, 1, false, base.Add(time.Hour))

	got, err := ps.GetProduct(ctx, plain.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"/uploads/remera.png"}, got.Images)
	require.Equal(t, []string{"S", "M"}, got.Sizes)
	require.Empty(t, got.Colors)
	require.NotNil(t, got.Colors)

	all, err := ps.ListActiveProducts(ctx, domain.ProductFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, star.ID, all[0].ID, "featured first")
	require.Equal(t, newer.ID, all[1].ID)

	featured := true
	only, err := ps.ListActiveProducts(ctx, domain.ProductFilter{Featured: &featured, Limit: 10})
	require.NoError(t, err)
	require.Len(t, only, 1)

	shirts, err := ps.ListActiveProducts(ctx, domain.ProductFilter{Category: "remeras", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	require.Equal(t, plain.ID, shirts[0].ID)

	newer.Active = false
	newer.Colors = []string{"negro"}
	newer.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, ps.UpdateProduct(ctx, newer))
	shirts, err = ps.ListActiveProducts(ctx, domain.ProductFilter{Category: "remeras", Limit: 10})
	require.NoError(t, err)
	require.Len(t, shirts, 1, "inactive products are hidden")
	hidden, err := ps.GetProduct(ctx, newer.ID)
	require.NoError(t, err)
	require.False(t, hidden.Active)
	require.Equal(t, []string{"negro"}, hidden.Colors)

	require.NoError(t, ps.DecrementStock(ctx, star.ID, 2, base))
	require.ErrorIs(t, ps.DecrementStock(ctx, star.ID, 1, base), store.ErrConflict)
	require.ErrorIs(t, ps.DecrementStock(ctx, "missing", 1, base), store.ErrNotFound)
	_, err = ps.GetProduct(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, ps.UpdateProduct(ctx, domain.Product{ID: "missing", UpdatedAt: base}), store.ErrNotFound)
}

func testCarts(t *testing.T, s store.Store) {
	ctx := context.Background()
	cs := s.Carts()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	p := newProduct(t, s, "vestido", "vestidos", 2000, 10, false, base)

	first := domain.CartItem{
		ID: idx.NewAt(base).String(), UserID: "u1", ProductID: p.ID, Quantity: 1, Size: "M",
		CreatedAt: base, UpdatedAt: base,
	}
	second := domain.CartItem{
		ID: idx.NewAt(base.Add(time.Minute)).String(), UserID: "u1", ProductID: p.ID, Quantity: 2, Size: "S",
		CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute),
	}
	require.NoError(t, cs.CreateCartItem(ctx, first))
	require.NoError(t, cs.CreateCartItem(ctx, second))

	dup := first
	dup.ID = idx.New().String()
	require.ErrorIs(t, cs.CreateCartItem(ctx, dup), store.ErrAlreadyExists)

	found, err := cs.FindCartItem(ctx, "u1", p.ID, "M", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)
	_, err = cs.FindCartItem(ctx, "u1", p.ID, "L", "")
	require.ErrorIs(t, err, store.ErrNotFound)

	lines, err := cs.ListCartLines(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, second.ID, lines[0].ID, "newest first")
	require.Equal(t, "vestido", lines[0].Product.Name)
	require.EqualValues(t, 4000, lines[0].Subtotal())

	_, err = cs.GetCartLine(ctx, "u2", first.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "other users cannot see the line")

	require.NoError(t, cs.SetCartItemQuantity(ctx, "u1", first.ID, 3, base.Add(time.Hour)))
	require.ErrorIs(t, cs.SetCartItemQuantity(ctx, "u2", first.ID, 3, base), store.ErrNotFound)
	line, err := cs.GetCartLine(ctx, "u1", first.ID)
	require.NoError(t, err)
	require.Equal(t, 3, line.Quantity)
	require.True(t, line.UpdatedAt.Equal(base.Add(time.Hour)))

	require.ErrorIs(t, cs.DeleteCartItem(ctx, "u2", first.ID), store.ErrNotFound)
	require.NoError(t, cs.DeleteCartItem(ctx, "u1", first.ID))

	require.NoError(t, cs.ClearCart(ctx, "u1"))
	lines, err = cs.ListCartLines(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func testOrders(t *testing.T, s store.Store) {
	ctx := context.Background()
	orders := s.Orders()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mk := func(user string, at time.Time, status domain.OrderStatus) domain.Order {
		o := domain.Order{
			ID:                idx.NewAt(at).String(),
			UserID:            user,
			UserEmail:         user + "@example.com",
			Status:            status,
			TotalUYU:          3000,
			ShippingEncrypted: "opaque",
			CreatedAt:         at,
			UpdatedAt:         at,
		}
		o.Items = []domain.OrderItem{
			{ID: idx.NewAt(at).String(), ProductID: "p1", ProductName: "Buzo", ProductPriceUYU: 1000, Quantity: 1},
			{ID: idx.NewAt(at).String(), ProductID: "p2", ProductName: "Remera", ProductPriceUYU: 1000, Quantity: 2, Size: "M"},
		}
		require.NoError(t, orders.CreateOrder(ctx, o))
		return o
	}

	older := mk("u1", base, domain.OrderPending)
	newer := mk("u1", base.Add(time.Hour), domain.OrderShipped)
	other := mk("u2", base.Add(2*time.Hour), domain.OrderPending)

	got, err := orders.GetOrder(ctx, "u1", older.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, older.ID, got.Items[0].OrderID)
	require.Equal(t, "opaque", got.ShippingEncrypted)

	_, err = orders.GetOrder(ctx, "u2", older.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = orders.GetOrder(ctx, "", older.ID)
	require.NoError(t, err, "an empty owner matches any order")

	mine, err := orders.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, newer.ID, mine[0].ID)

	pending, err := orders.ListOrders(ctx, domain.OrderFilter{Status: domain.OrderPending, Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, other.ID, pending[0].ID)

	all, err := orders.ListOrders(ctx, domain.OrderFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, newer.ID, all[0].ID)

	require.NoError(t, orders.SetOrderStatus(ctx, older.ID, domain.OrderConfirmed, base.Add(time.Hour)))
	require.ErrorIs(t, orders.SetOrderStatus(ctx, "missing", domain.OrderConfirmed, base), store.ErrNotFound)
	got, err = orders.GetOrder(ctx, "u1", older.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderConfirmed, got.Status)
}
