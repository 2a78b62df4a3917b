package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una operación.
const (
	DealStatusOffer         = "Offer"
	DealStatusUnderContract = "UnderContract"
	DealStatusClosed        = "Closed"
	DealStatusLost          = "Lost"
)

// IsValidDealStatus indica si el estado pertenece al enum.
func IsValidDealStatus(s string) bool {
	switch s {
	case DealStatusOffer, DealStatusUnderContract, DealStatusClosed, DealStatusLost:
		return true
	}
	return false
}

// Deal operación en curso sobre un listing.
type Deal struct {
	Owned
	ListingID         int64           `gorm:"not null;index" json:"listing_id"`
	ContactID         *int64          `gorm:"index" json:"contact_id,omitempty"` // comprador/inquilino
	Status            string          `gorm:"not null;index" json:"status"`
	Amount            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CommissionPercent decimal.Decimal `gorm:"type:numeric(5,2)" json:"commission_percent"`
	CommissionAmount  decimal.Decimal `gorm:"type:numeric(14,2)" json:"commission_amount"`
	CloseDate         *time.Time      `json:"close_date,omitempty"`
	Notes             string          `json:"notes"`
}

// Task tarea asignada a un usuario.
type Task struct {
	Owned
	EntityLink
	AssignedTo  int64      `gorm:"not null;index" json:"assigned_to"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `gorm:"index" json:"due_date,omitempty"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Document archivo almacenado (URL opaca del almacén de blobs).
type Document struct {
	Owned
	EntityLink
	Filename     string `gorm:"not null" json:"filename"`
	ContentType  string `json:"content_type"`
	FileSize     int64  `json:"file_size"`
	URL          string `gorm:"not null" json:"url"`
	StorageKey   string `json:"storage_key"`
	DocumentType string `json:"document_type"` // nota_encargo, escritura, dni, contrato...
	UploadedBy   int64  `gorm:"index" json:"uploaded_by"`
}
