// Package lead define las tablas de transición del estado de un lead comprador.
package lead

import "github.com/jhoicas/crm-inmobiliario/internal/domain/entity"

// estado del lead según el estado de la cita; Rescheduled y NoShow no tienen efecto.
var appointmentTransitions = map[entity.AppointmentStatus]entity.LeadStatus{
	entity.AppointmentScheduled: entity.LeadStatusCitaPendiente,
	entity.AppointmentCompleted: entity.LeadStatusOfertaPendiente,
	entity.AppointmentCancelled: entity.LeadStatusCitaPendiente,
}

// StatusForAppointment devuelve el nuevo estado del lead y si existe transición.
func StatusForAppointment(status entity.AppointmentStatus) (entity.LeadStatus, bool) {
	s, ok := appointmentTransitions[status]
	return s, ok
}

// StatusForVisitOutcome devuelve el nuevo estado del lead tras registrar una visita.
// El enum es exhaustivo; un valor fuera de él devuelve false.
func StatusForVisitOutcome(outcome entity.VisitOutcome) (entity.LeadStatus, bool) {
	switch outcome {
	case entity.VisitOfferMade:
		return entity.LeadStatusOfertaPendiente, true
	case entity.VisitInfoNeeded:
		return entity.LeadStatusCitaPendiente, true
	default:
		return "", false
	}
}
