package entity

import "github.com/shopspring/decimal"

// Tipos de operación.
const (
	ListingTypeSale = "Sale"
	ListingTypeRent = "Rent"
)

// Estados de un listing.
const (
	ListingStatusForSale   = "En Venta"
	ListingStatusForRent   = "En Alquiler"
	ListingStatusSold      = "Vendido"
	ListingStatusRented    = "Alquilado"
	ListingStatusDiscarded = "Descartado"
	ListingStatusDraft     = "Draft"
)

var listingStatuses = map[string]bool{
	ListingStatusForSale: true, ListingStatusForRent: true, ListingStatusSold: true,
	ListingStatusRented: true, ListingStatusDiscarded: true, ListingStatusDraft: true,
}

// IsValidListingStatus indica si el estado pertenece al enum.
func IsValidListingStatus(s string) bool { return listingStatuses[s] }

// IsValidListingType indica si el tipo de operación es Sale o Rent.
func IsValidListingType(s string) bool { return s == ListingTypeSale || s == ListingTypeRent }

// Listing oferta comercial sobre un inmueble.
type Listing struct {
	Owned
	PropertyID       int64           `gorm:"not null;index" json:"property_id"`
	AgentID          int64           `gorm:"not null;index" json:"agent_id"`
	ListingType      string          `gorm:"not null" json:"listing_type"`
	Status           string          `gorm:"not null;index" json:"status"`
	Price            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	IsFeatured       bool            `json:"is_featured"`
	IsBankOwned      bool            `json:"is_bank_owned"`
	PublishToWebsite bool            `json:"publish_to_website"`
	PortalReference  string          `json:"portal_reference"`
	Description      string          `json:"description"`
}

// ListingWithDetails listing con su inmueble, imágenes y agente.
type ListingWithDetails struct {
	Listing   Listing          `json:"listing"`
	Property  Property         `json:"property"`
	Images    []*PropertyImage `json:"images"`
	AgentName string           `json:"agent_name"`
}
