package entity

import "time"

// AppointmentStatus estado de una cita. Cambiarlo dispara la sincronización del lead.
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "Scheduled"
	AppointmentCompleted   AppointmentStatus = "Completed"
	AppointmentCancelled   AppointmentStatus = "Cancelled"
	AppointmentRescheduled AppointmentStatus = "Rescheduled"
	AppointmentNoShow      AppointmentStatus = "NoShow"
)

// IsValid indica si el estado pertenece al enum.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentRescheduled, AppointmentNoShow:
		return true
	}
	return false
}

// VisitOutcome resultado registrado manualmente tras una visita.
type VisitOutcome string

const (
	VisitOfferMade  VisitOutcome = "offer_made"
	VisitInfoNeeded VisitOutcome = "info_needed"
)

// IsValid indica si el resultado pertenece al enum.
func (o VisitOutcome) IsValid() bool {
	return o == VisitOfferMade || o == VisitInfoNeeded
}

// Tipos de cita.
const (
	AppointmentTypeVisit     = "Visita"
	AppointmentTypeMeeting   = "Reunión"
	AppointmentTypeSigning   = "Firma"
	AppointmentTypeValuation = "Tasación"
)

// Appointment visita o reunión agendada.
type Appointment struct {
	Owned
	UserID           int64             `gorm:"not null;index" json:"user_id"`
	ContactID        int64             `gorm:"not null;index" json:"contact_id"`
	ListingID        *int64            `gorm:"index" json:"listing_id,omitempty"`
	DealID           *int64            `gorm:"index" json:"deal_id,omitempty"`
	ListingContactID *int64            `gorm:"index" json:"listing_contact_id,omitempty"`
	ProspectID       *int64            `gorm:"index" json:"prospect_id,omitempty"`
	StartsAt         time.Time         `gorm:"not null;index" json:"starts_at"`
	EndsAt           time.Time         `gorm:"not null" json:"ends_at"`
	Type             string            `json:"type"`
	Status           AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	VisitOutcome     *VisitOutcome     `gorm:"type:varchar(20)" json:"visit_outcome,omitempty"`
	Notes            string            `json:"notes"`
}
