package domain

import "time"

// Category is a fixed catalog section.
type Category struct {
	ID   string
	Name string
}

// Categories lists the catalog sections in display order.
func Categories() []Category {
	return []Category{
		{ID: "calzado", Name: "Calzado"},
		{ID: "pantalones", Name: "Pantalones"},
		{ID: "remeras", Name: "Remeras"},
		{ID: "vestidos", Name: "Vestidos"},
		{ID: "buzos", Name: "Buzos"},
		{ID: "ropa_interior", Name: "Ropa Interior"},
	}
}

// ValidCategory reports whether id names a catalog section.
func ValidCategory(id string) bool {
	for _, c := range Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Product is a catalog entry. Prices are whole pesos.
type Product struct {
	ID          string
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows the public catalog listing. Only active products
// are ever listed.
type ProductFilter struct {
	Category string
	Featured *bool
	Limit    int
	Offset   int
}

// CartItem is one product variant in a user's cart. The same product, size
// and color never appear twice for one user.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	Size      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine is a cart item joined with its product.
type CartLine struct {
	CartItem
	Product Product
}

// Subtotal is the line price at the current product price.
func (l CartLine) Subtotal() int64 {
	return l.Product.PriceUYU * int64(l.Quantity)
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// ShippingPII is the delivery contact stored encrypted on an order.
type ShippingPII struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Department string `json:"department"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Order is a placed order. Item prices and names are copied from the
// product at checkout.
type Order struct {
	ID                string
	UserID            string
	UserEmail         string
	Status            OrderStatus
	TotalUYU          int64
	ShippingEncrypted string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []OrderItem
}

type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductName     string
	ProductPriceUYU int64
	Quantity        int
	Size            string
	Color           string
}

// OrderFilter narrows the staff order listing. An empty status lists all.
type OrderFilter struct {
	Status OrderStatus
	Limit  int
	Offset int
}
