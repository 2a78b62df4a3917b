package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/leads"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func newAppointments(f fixture) *usecase.AppointmentUseCase {
	sync := leads.NewSynchronizer(f.env.Repos.Leads, f.env.Tx, f.sessions, zerolog.Nop())
	return usecase.NewAppointmentUseCase(f.env.Repos.Appointments, sync, f.sessions, zerolog.Nop())
}

func (f fixture) leadStatus(t *testing.T, id int64) entity.LeadStatus {
	t.Helper()
	l, err := f.env.Repos.Leads.GetByID(context.Background(), f.tn.ID(), id)
	require.NoError(t, err)
	return l.Status
}

func visit(contactID int64, listingID *int64) *entity.Appointment {
	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	return &entity.Appointment{
		ContactID: contactID,
		ListingID: listingID,
		StartsAt:  start,
		EndsAt:    start.Add(45 * time.Minute),
		Type:      "visita",
	}
}

// ── Create ──

func TestAppointmentCreate_CreaLeadYLoVincula(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Pablo")
	l := f.env.Listing(t, f.tn)

	a, err := uc.Create(f.ctx, visit(c.ID, &l.ID))
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentScheduled, a.Status)
	assert.Equal(t, f.tn.Agent.ID, a.UserID)
	require.NotNil(t, a.ListingContactID)
	assert.Equal(t, entity.LeadStatusCitaPendiente, f.leadStatus(t, *a.ListingContactID))

	// la segunda cita del mismo contacto y anuncio reutiliza el lead
	b, err := uc.Create(f.ctx, visit(c.ID, &l.ID))
	require.NoError(t, err)
	assert.Equal(t, *a.ListingContactID, *b.ListingContactID)
}

func TestAppointmentCreate_Validacion(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)

	_, err := uc.Create(f.ctx, visit(0, nil))
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	a := visit(1, nil)
	a.Status = "Pospuesta"
	_, err = uc.Create(f.ctx, a)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAppointmentCreate_SinSesion(t *testing.T) {
	f := setup(t)
	_, err := newAppointments(f).Create(context.Background(), visit(1, nil))
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}

// ── ChangeStatus / RecordVisitOutcome ──

func TestAppointmentChangeStatus_MueveElLead(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Irene")
	l := f.env.Listing(t, f.tn)
	a, err := uc.Create(f.ctx, visit(c.ID, &l.ID))
	require.NoError(t, err)
	leadID := *a.ListingContactID

	updated, err := uc.ChangeStatus(f.ctx, a.ID, entity.AppointmentCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentCompleted, updated.Status)
	assert.Equal(t, entity.LeadStatusOfertaPendiente, f.leadStatus(t, leadID))

	// NoShow no tiene efecto sobre el lead
	_, err = uc.ChangeStatus(f.ctx, a.ID, entity.AppointmentNoShow)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusOfertaPendiente, f.leadStatus(t, leadID))

	_, err = uc.ChangeStatus(f.ctx, a.ID, "Inventado")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAppointmentRecordVisitOutcome(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Jorge")
	l := f.env.Listing(t, f.tn)
	a, err := uc.Create(f.ctx, visit(c.ID, &l.ID))
	require.NoError(t, err)

	updated, err := uc.RecordVisitOutcome(f.ctx, a.ID, dto.VisitOutcomeRequest{
		Outcome: entity.VisitOfferMade,
		Notes:   "ofrece 240.000",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.VisitOutcome)
	assert.Equal(t, entity.VisitOfferMade, *updated.VisitOutcome)
	assert.Equal(t, "ofrece 240.000", updated.Notes)
	assert.Equal(t, entity.LeadStatusOfertaPendiente, f.leadStatus(t, *a.ListingContactID))

	updated, err = uc.RecordVisitOutcome(f.ctx, a.ID, dto.VisitOutcomeRequest{Outcome: entity.VisitInfoNeeded, Notes: "pide planos"})
	require.NoError(t, err)
	assert.Equal(t, "ofrece 240.000\npide planos", updated.Notes)
	assert.Equal(t, entity.LeadStatusCitaPendiente, f.leadStatus(t, *a.ListingContactID))

	_, err = uc.RecordVisitOutcome(f.ctx, a.ID, dto.VisitOutcomeRequest{Outcome: "lo pensará"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ── Update / ListByRange ──

func TestAppointmentUpdate_IntervaloInvalido(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Nuria")
	a, err := uc.Create(f.ctx, visit(c.ID, nil))
	require.NoError(t, err)

	before := a.StartsAt.Add(-time.Hour)
	_, err = uc.Update(f.ctx, a.ID, dto.AppointmentPatch{EndsAt: &before})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	later := a.StartsAt.Add(2 * time.Hour)
	updated, err := uc.Update(f.ctx, a.ID, dto.AppointmentPatch{EndsAt: &later})
	require.NoError(t, err)
	assert.True(t, updated.EndsAt.Equal(later))
}

func TestAppointmentListByRange(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Sara")
	_, err := uc.Create(f.ctx, visit(c.ID, nil))
	require.NoError(t, err)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	got, err := uc.ListByRange(f.ctx, dto.AppointmentRange{From: day, To: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.ListByRange(f.ctx, dto.AppointmentRange{From: day.AddDate(0, 0, 1), To: day.AddDate(0, 0, 2)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppointmentGet_OtraCuentaNoExiste(t *testing.T) {
	f := setup(t)
	uc := newAppointments(f)
	c := f.env.Contact(t, f.tn, "Raúl")
	a, err := uc.Create(f.ctx, visit(c.ID, nil))
	require.NoError(t, err)

	other := f.env.NewTenant(t, "mar")
	_, err = uc.Get(as(other, entity.RoleAgent), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
