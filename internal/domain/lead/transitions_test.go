package lead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/lead"
)

func TestStatusForAppointment_Tabla(t *testing.T) {
	tests := []struct {
		in     entity.AppointmentStatus
		want   entity.LeadStatus
		mapped bool
	}{
		{entity.AppointmentScheduled, entity.LeadStatusCitaPendiente, true},
		{entity.AppointmentCompleted, entity.LeadStatusOfertaPendiente, true},
		{entity.AppointmentCancelled, entity.LeadStatusCitaPendiente, true},
		{entity.AppointmentRescheduled, "", false},
		{entity.AppointmentNoShow, "", false},
		{entity.AppointmentStatus("Inventado"), "", false},
	}
	for _, tt := range tests {
		got, ok := lead.StatusForAppointment(tt.in)
		assert.Equal(t, tt.mapped, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestStatusForVisitOutcome_Tabla(t *testing.T) {
	got, ok := lead.StatusForVisitOutcome(entity.VisitOfferMade)
	assert.True(t, ok)
	assert.Equal(t, entity.LeadStatusOfertaPendiente, got)

	got, ok = lead.StatusForVisitOutcome(entity.VisitInfoNeeded)
	assert.True(t, ok)
	assert.Equal(t, entity.LeadStatusCitaPendiente, got)

	_, ok = lead.StatusForVisitOutcome("otro")
	assert.False(t, ok)
}
