package entity

import "github.com/shopspring/decimal"

// Tipos de inmueble.
const (
	PropertyTypePiso   = "piso"
	PropertyTypeCasa   = "casa"
	PropertyTypeLocal  = "local"
	PropertyTypeSolar  = "solar"
	PropertyTypeGaraje = "garaje"
)

// Property unidad física (piso, casa, local...).
type Property struct {
	Owned
	Title              string           `json:"title"`
	PropertyType       string           `gorm:"not null;default:'piso'" json:"property_type"`
	Street             string           `json:"street"`
	AddressDetails     string           `json:"address_details"`
	PostalCode         string           `json:"postal_code"`
	City               string           `json:"city"`
	Province           string           `json:"province"`
	Neighborhood       string           `json:"neighborhood"`
	LocationID         *int64           `gorm:"index" json:"location_id,omitempty"`
	Latitude           *float64         `json:"latitude,omitempty"`
	Longitude          *float64         `json:"longitude,omitempty"`
	CadastralReference string           `gorm:"index" json:"cadastral_reference"`
	Bedrooms           int              `json:"bedrooms"`
	Bathrooms          int              `json:"bathrooms"`
	SquareMeter        int              `json:"square_meter"`
	BuiltSurfaceArea   int              `json:"built_surface_area"`
	YearBuilt          int              `json:"year_built"`
	Floor              string           `json:"floor"`
	HasElevator        bool             `json:"has_elevator"`
	HasGarage          bool             `json:"has_garage"`
	HasStorageRoom     bool             `json:"has_storage_room"`
	HasTerrace         bool             `json:"has_terrace"`
	HasPool            bool             `json:"has_pool"`
	HasAirConditioning bool             `json:"has_air_conditioning"`
	HasHeating         bool             `json:"has_heating"`
	Furnished          bool             `json:"furnished"`
	CommunityFees      *decimal.Decimal `gorm:"type:numeric(12,2)" json:"community_fees,omitempty"`
	OwnerContactID     *int64           `gorm:"index" json:"owner_contact_id,omitempty"`
	Description        string           `json:"description"`
}

// PropertyImage imagen ordenada de un inmueble. Se aísla por cuenta a través de properties.
type PropertyImage struct {
	Record
	PropertyID int64  `gorm:"not null;index" json:"property_id"`
	URL        string `gorm:"not null" json:"url"`
	StorageKey string `json:"storage_key"`
	Caption    string `json:"caption"`
	SortOrder  int    `gorm:"not null;default:0" json:"sort_order"`
}

// Location barrio/ciudad/provincia normalizados (catálogo global, sin cuenta).
type Location struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Neighborhood string `json:"neighborhood"`
	City         string `gorm:"not null" json:"city"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	Key          string `gorm:"column:location_key;uniqueIndex;not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}
