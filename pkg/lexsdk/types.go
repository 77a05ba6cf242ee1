package lexsdk

import "time"

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message" example:"invalid credentials"`
}

// OKResponse is returned by operations with nothing else to report.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

// CreatedResponse is returned when a submission was stored.
type CreatedResponse struct {
	OK bool   `json:"ok" example:"true"`
	ID string `json:"id" example:"01J9Z3V7W0Q8Y6K4T2R1M5N3P0"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (the latter adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Session Types
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email" example:"admin@estudio.example"`
	Password string `json:"password" example:"correct-horse-battery"`
	// Phone is required for every role except root.
	Phone string `json:"phone,omitempty" example:"+598 99 123 456"`
}

// MeResponse describes the caller's session.
type MeResponse struct {
	Authenticated bool    `json:"authenticated"`
	User          *MeUser `json:"user,omitempty"`
}

type MeUser struct {
	Email string `json:"email"`
	Role  string `json:"role" example:"admin"`
}

// ============================================================================
// Intake Types
// ============================================================================

// ContactRequest is a contact form submission. Country, department and
// subject default to Uruguay, Montevideo and consulta-general.
type ContactRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Country           string `json:"pais,omitempty"`
	Department        string `json:"departamento,omitempty"`
	Subject           string `json:"subject,omitempty"`
	Subcategory       string `json:"subcategoria,omitempty"`
	SubcategoryDetail string `json:"subcategoriaDetalle,omitempty"`
	Message           string `json:"message"`
	AcceptPrivacy     bool   `json:"acceptPrivacy"`
}

// ReportRequest is a paid report request. CostUYU must equal the server's
// price for Type.
type ReportRequest struct {
	Type              string `json:"tipo"`
	Country           string `json:"pais"`
	Department        string `json:"departamento"`
	City              string `json:"ciudad"`
	CostUYU           int64  `json:"costoUyu"`
	IDType            string `json:"idType"`
	IDNumber          string `json:"idNumber"`
	Email             string `json:"email"`
	Mobile            string `json:"celular"`
	FirstName         string `json:"nombre"`
	LastName          string `json:"apellido"`
	Category          string `json:"categoria,omitempty"`
	Subcategory       string `json:"subcategoria,omitempty"`
	SubcategoryDetail string `json:"subcategoriaDetalle,omitempty"`
	Details           string `json:"details,omitempty"`
	AcceptPrivacy     bool   `json:"acceptPrivacy"`
}

// LegalService is a priced report type.
type LegalService struct {
	Slug        string `json:"slug" example:"defensa-penal"`
	Name        string `json:"name" example:"Defensa penal"`
	Description string `json:"description"`
	BaseCostUYU int64  `json:"baseCostUyu" example:"0"`
	LegalFeeUYU int64  `json:"legalFeeUyu" example:"9900"`
	TotalUYU    int64  `json:"totalUyu" example:"9900"`
	Enabled     bool   `json:"enabled"`
}

type ServicesResponse struct {
	Items []LegalService `json:"items"`
}

// ============================================================================
// Review Types
// ============================================================================

type ReviewRequest struct {
	Name          string `json:"name"`
	Rating        int    `json:"rating" example:"5"`
	Message       string `json:"message"`
	AcceptPrivacy bool   `json:"acceptPrivacy"`
}

type Review struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rating     int        `json:"rating"`
	Message    string     `json:"message"`
	Status     string     `json:"status,omitempty" example:"pending"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

type ReviewsResponse struct {
	Items []Review `json:"items"`
}

// ============================================================================
// Analytics Types
// ============================================================================

type PageViewRequest struct {
	Path     string `json:"path" example:"/servicios"`
	Referrer string `json:"referrer,omitempty"`
}

type PageView struct {
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageViewsResponse struct {
	Items []PageView `json:"items"`
}

type DayCount struct {
	Day   string `json:"day" example:"2026-05-01"`
	Count int    `json:"count"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

type AnalyticsOverview struct {
	Total    int         `json:"total"`
	PerDay   []DayCount  `json:"perDay"`
	TopPaths []PathCount `json:"topPaths"`
}

// ============================================================================
// Admin Types
// ============================================================================

// AdminContact is a contact message with its PII decrypted. PII fields are
// empty when the stored blob could not be decrypted.
type AdminContact struct {
	ID                string    `json:"id"`
	Subject           string    `json:"subject"`
	CreatedAt         time.Time `json:"createdAt"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Country           string    `json:"pais"`
	Department        string    `json:"departamento"`
	Subcategory       string    `json:"subcategoria"`
	SubcategoryDetail string    `json:"subcategoriaDetalle"`
	Message           string    `json:"message"`
}

type AdminContactsResponse struct {
	Items []AdminContact `json:"items"`
}

// AdminReport is a report with its PII decrypted, with the same fallback
// as AdminContact.
type AdminReport struct {
	ID                string    `json:"id"`
	Type              string    `json:"tipo"`
	Country           string    `json:"pais"`
	Department        string    `json:"departamento"`
	City              string    `json:"ciudad"`
	CostUYU           int64     `json:"costoUyu"`
	Details           string    `json:"details"`
	CreatedAt         time.Time `json:"createdAt"`
	IDType            string    `json:"idType"`
	IDNumber          string    `json:"idNumber"`
	Email             string    `json:"email"`
	Mobile            string    `json:"celular"`
	FirstName         string    `json:"nombre"`
	LastName          string    `json:"apellido"`
	Category          string    `json:"categoria"`
	Subcategory       string    `json:"subcategoria"`
	SubcategoryDetail string    `json:"subcategoriaDetalle"`
}

type AdminReportsResponse struct {
	Items []AdminReport `json:"items"`
}

type UploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url" example:"/uploads/0f1e2d3c4b5a69788796a5b4c3d2e1f0.png"`
}

// ============================================================================
// Shop Types
// ============================================================================

type Category struct {
	ID   string `json:"id" example:"remeras"`
	Name string `json:"name" example:"Remeras"`
}

type CategoriesResponse struct {
	Items []Category `json:"items"`
}

// Product is a catalog entry. Prices are whole Uruguayan pesos.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceUYU    int64     `json:"priceUYU" example:"890"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProductsResponse struct {
	Items []Product `json:"items"`
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category" example:"remeras"`
	PriceUYU    int64    `json:"priceUYU"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Featured    bool     `json:"featured"`
	Active      bool     `json:"active"`
}

type CartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity" example:"1"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity" example:"2"`
}

type CartLine struct {
	ID          string  `json:"id"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	SubtotalUYU int64   `json:"subtotalUYU"`
	Product     Product `json:"product"`
}

// CartResponse is the caller's cart at current prices.
type CartResponse struct {
	Items    []CartLine `json:"items"`
	TotalUYU int64      `json:"totalUYU"`
}

type Shipping struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Department string `json:"department" example:"Montevideo"`
	PostalCode string `json:"postalCode,omitempty"`
}

// OrderRequest places an order from the caller's cart.
type OrderRequest struct {
	Shipping Shipping `json:"shipping"`
	Notes    string   `json:"notes,omitempty"`
}

type OrderItem struct {
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	ProductPriceUYU int64  `json:"productPriceUYU"`
	Quantity        int    `json:"quantity"`
	Size            string `json:"size"`
	Color           string `json:"color"`
}

// Order is a placed order. Items are only filled by the single-order
// endpoint.
type Order struct {
	ID        string      `json:"id"`
	UserEmail string      `json:"userEmail,omitempty"`
	Status    string      `json:"status" example:"pending"`
	TotalUYU  int64       `json:"totalUYU"`
	Shipping  Shipping    `json:"shipping"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Items     []OrderItem `json:"items,omitempty"`
}

type OrdersResponse struct {
	Items []Order `json:"items"`
}

type OrderStatusRequest struct {
	Status string `json:"status" example:"shipped"`
}
