// Package entity contiene las entidades del CRM. Las etiquetas gorm describen el esquema;
// el dominio no depende del driver concreto.
package entity

import "time"

// Record campos comunes de toda fila con baja lógica (is_active).
type Record struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrimaryKey devuelve el id generado al insertar.
func (r *Record) PrimaryKey() int64 { return r.ID }

// Activate marca la fila como activa (alta).
func (r *Record) Activate() { r.IsActive = true }

// Owned Record con columna account_id directa.
type Owned struct {
	Record
	AccountID int64 `gorm:"not null;index" json:"account_id"`
}

// SetAccountID fija la cuenta propietaria antes de insertar.
func (o *Owned) SetAccountID(id int64) { o.AccountID = id }

// OwnerAccountID devuelve la cuenta propietaria.
func (o *Owned) OwnerAccountID() int64 { return o.AccountID }

// LinkKind entidad a la que puede vincularse una tarea, documento o comentario.
type LinkKind string

const (
	LinkListing     LinkKind = "listing"
	LinkContact     LinkKind = "contact"
	LinkDeal        LinkKind = "deal"
	LinkAppointment LinkKind = "appointment"
	LinkProspect    LinkKind = "prospect"
)

// Column devuelve la columna FK asociada al tipo de vínculo ("" si no existe).
func (k LinkKind) Column() string {
	switch k {
	case LinkListing:
		return "listing_id"
	case LinkContact:
		return "contact_id"
	case LinkDeal:
		return "deal_id"
	case LinkAppointment:
		return "appointment_id"
	case LinkProspect:
		return "prospect_id"
	default:
		return ""
	}
}

// EntityLink vínculos opcionales con otras entidades de la cuenta.
type EntityLink struct {
	ListingID     *int64 `gorm:"index" json:"listing_id,omitempty"`
	ContactID     *int64 `gorm:"index" json:"contact_id,omitempty"`
	DealID        *int64 `gorm:"index" json:"deal_id,omitempty"`
	AppointmentID *int64 `gorm:"index" json:"appointment_id,omitempty"`
	ProspectID    *int64 `gorm:"index" json:"prospect_id,omitempty"`
}

// Targets devuelve los vínculos presentes como pares (tipo, id).
func (l EntityLink) Targets() map[LinkKind]int64 {
	out := make(map[LinkKind]int64, 5)
	for kind, v := range map[LinkKind]*int64{
		LinkListing:     l.ListingID,
		LinkContact:     l.ContactID,
		LinkDeal:        l.DealID,
		LinkAppointment: l.AppointmentID,
		LinkProspect:    l.ProspectID,
	} {
		if v != nil {
			out[kind] = *v
		}
	}
	return out
}
