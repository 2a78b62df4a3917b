package entity

import "github.com/shopspring/decimal"

// LeadStatus estado del flujo comercial de un lead comprador.
type LeadStatus string

const (
	LeadStatusCitaPendiente           LeadStatus = "Cita Pendiente"
	LeadStatusOfertaPendiente         LeadStatus = "Oferta Pendiente"
	LeadStatusOfertaAceptadaPendiente LeadStatus = "Oferta Aceptada Pendiente"
)

// IsValid indica si el estado pertenece al enum.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusCitaPendiente, LeadStatusOfertaPendiente, LeadStatusOfertaAceptadaPendiente:
		return true
	}
	return false
}

// Tipos de relación contacto-listing.
const (
	ContactTypeBuyer = "buyer"
	ContactTypeOwner = "owner"
)

// Orígenes de lead.
const (
	LeadSourceAppointment = "Appointment"
	LeadSourceWebsite     = "Website"
	LeadSourcePortal      = "Portal"
	LeadSourceManual      = "Manual"
)

// ListingContact vincula un contacto con un listing (y opcionalmente un prospect).
// Con ContactType "buyer" es un lead. Se aísla por cuenta a través de contacts.
type ListingContact struct {
	Record
	ContactID   int64      `gorm:"not null;index" json:"contact_id"`
	ListingID   *int64     `gorm:"index" json:"listing_id,omitempty"`
	ProspectID  *int64     `gorm:"index" json:"prospect_id,omitempty"`
	ContactType string     `gorm:"not null;default:'buyer'" json:"contact_type"`
	Status      LeadStatus `gorm:"type:varchar(40)" json:"status"`
	Source      string     `json:"source"`
}

// Estados de un prospect.
const (
	ProspectStatusNew       = "Nuevo"
	ProspectStatusFollowUp  = "En seguimiento"
	ProspectStatusValuation = "Valoración"
	ProspectStatusCaptured  = "Captado"
	ProspectStatusDiscarded = "Descartado"
)

var prospectStatuses = map[string]bool{
	ProspectStatusNew: true, ProspectStatusFollowUp: true, ProspectStatusValuation: true,
	ProspectStatusCaptured: true, ProspectStatusDiscarded: true,
}

// IsValidProspectStatus indica si el estado pertenece al enum.
func IsValidProspectStatus(s string) bool { return prospectStatuses[s] }

// Prospect inmueble en captación (todavía no es un listing).
type Prospect struct {
	Owned
	ContactID      int64               `gorm:"not null;index" json:"contact_id"`
	Status         string              `gorm:"not null" json:"status"`
	ListingType    string              `json:"listing_type"`
	PropertyType   string              `json:"property_type"`
	Street         string              `json:"street"`
	City           string              `json:"city"`
	EstimatedPrice decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"estimated_price"`
	Notes          string              `json:"notes"`
}
