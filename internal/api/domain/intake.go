package domain

import "time"

// ContactMessage is a contact-form submission. Everything that identifies the
// sender lives in PIIEncrypted.
type ContactMessage struct {
	ID           string
	Subject      string
	PIIEncrypted string
	CreatedAt    time.Time
}

// ContactPII is the plaintext sealed into ContactMessage.PIIEncrypted. The
// JSON keys are part of the stored format.
type ContactPII struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Country           string `json:"pais"`
	Department        string `json:"departamento"`
	Subcategory       string `json:"subcategoria"`
	SubcategoryDetail string `json:"subcategoriaDetalle"`
	Message           string `json:"message"`
}

// Report is a paid report request. Identity and contact details live in
// PIIEncrypted; the remaining columns are non-sensitive metadata.
type Report struct {
	ID           string
	ReportType   string
	Country      string
	Department   string
	City         string
	CostUYU      int64
	IDType       string
	Details      string
	PIIEncrypted string
	CreatedAt    time.Time
}

// ReportPII is the plaintext sealed into Report.PIIEncrypted.
type ReportPII struct {
	IDType            string `json:"idType"`
	IDNumber          string `json:"idNumber"` // digits only
	Email             string `json:"email"`
	Mobile            string `json:"celular"`
	FirstName         string `json:"nombre"`
	LastName          string `json:"apellido"`
	Category          string `json:"categoria"`
	Subcategory       string `json:"subcategoria"`
	SubcategoryDetail string `json:"subcategoriaDetalle"`
}

// LegalService is a priced report type.
type LegalService struct {
	Slug        string
	Name        string
	Description string
	BaseCostUYU int64
	LegalFeeUYU int64
	Enabled     bool
}

// TotalUYU is the price charged for the service.
func (s LegalService) TotalUYU() int64 {
	return s.BaseCostUYU + s.LegalFeeUYU
}

// DefaultServiceFeeUYU is charged when a report type has no enabled pricing
// row, or when pricing cannot be loaded.
const DefaultServiceFeeUYU int64 = 9900
