package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/leads"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// AppointmentUseCase agenda de citas. Crear una cita o cambiar su estado mueve el lead asociado.
type AppointmentUseCase struct {
	CRUD[entity.Appointment]
	appointments repository.AppointmentRepository
	sync         *leads.Synchronizer
	log          zerolog.Logger
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(appointments repository.AppointmentRepository, sync *leads.Synchronizer, sessions *auth.Resolver, log zerolog.Logger) *AppointmentUseCase {
	return &AppointmentUseCase{
		CRUD:         newCRUD[entity.Appointment](appointments, sessions),
		appointments: appointments,
		sync:         sync,
		log:          log.With().Str("component", "appointments").Logger(),
	}
}

// Create agenda la cita, la vincula al lead comprador del contacto (creándolo si no existe)
// y sincroniza el estado del lead.
func (uc *AppointmentUseCase) Create(ctx context.Context, a *entity.Appointment) (*entity.Appointment, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if a.UserID == 0 {
		a.UserID = user.ID
	}
	if a.Status == "" {
		a.Status = entity.AppointmentScheduled
	}
	if !a.Status.IsValid() {
		return nil, fmt.Errorf("estado de cita %q: %w", a.Status, domain.ErrValidation)
	}
	if a.ContactID <= 0 {
		return nil, fmt.Errorf("contact_id obligatorio: %w", domain.ErrValidation)
	}

	if a.ListingContactID == nil {
		ref, err := uc.sync.FindOrCreateLeadForAppointment(ctx, a.ContactID, a.ListingID, a.ProspectID)
		if err != nil {
			return nil, err
		}
		a.ListingContactID = &ref.ID
	}

	created, err := uc.appointments.Create(ctx, user.AccountID, a)
	if err != nil {
		return nil, err
	}
	uc.syncLead(ctx, created)
	return created, nil
}

// Update actualización parcial (sin estado).
func (uc *AppointmentUseCase) Update(ctx context.Context, id int64, patch dto.AppointmentPatch) (*entity.Appointment, error) {
	if patch.StartsAt != nil || patch.EndsAt != nil {
		current, err := uc.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartsAt, current.EndsAt
		if patch.StartsAt != nil {
			start = *patch.StartsAt
		}
		if patch.EndsAt != nil {
			end = *patch.EndsAt
		}
		if end.Before(start) {
			return nil, fmt.Errorf("intervalo de cita inválido: %w", domain.ErrValidation)
		}
	}
	return uc.update(ctx, id, dto.PatchFields(patch))
}

// ChangeStatus cambia el estado de la cita y sincroniza el lead vinculado.
func (uc *AppointmentUseCase) ChangeStatus(ctx context.Context, id int64, status entity.AppointmentStatus) (*entity.Appointment, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("estado de cita %q: %w", status, domain.ErrValidation)
	}
	updated, err := uc.update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return nil, err
	}
	uc.syncLead(ctx, updated)
	return updated, nil
}

// RecordVisitOutcome registra el resultado de la visita y mueve el lead según la tabla de resultados.
func (uc *AppointmentUseCase) RecordVisitOutcome(ctx context.Context, id int64, in dto.VisitOutcomeRequest) (*entity.Appointment, error) {
	if !in.Outcome.IsValid() {
		return nil, fmt.Errorf("resultado de visita %q: %w", in.Outcome, domain.ErrValidation)
	}
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{"visit_outcome": in.Outcome}
	if note := strings.TrimSpace(in.Notes); note != "" {
		if current.Notes != "" {
			note = current.Notes + "\n" + note
		}
		fields["notes"] = note
	}
	updated, err := uc.update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if updated.ListingContactID != nil {
		if err := uc.sync.UpdateLeadStatusFromVisitOutcome(ctx, *updated.ListingContactID, in.Outcome); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// ListByRange citas que empiezan en [from, to), opcionalmente de un usuario.
func (uc *AppointmentUseCase) ListByRange(ctx context.Context, r dto.AppointmentRange) ([]*entity.Appointment, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	var userID *int64
	if r.UserID > 0 {
		userID = &r.UserID
	}
	return uc.appointments.ListByRange(ctx, accountID, r.From, r.To, userID)
}

// ListByContact citas activas de un contacto.
func (uc *AppointmentUseCase) ListByContact(ctx context.Context, contactID int64) ([]*entity.Appointment, error) {
	return uc.ListBy(ctx, "contact_id", contactID)
}

// ListByUser citas activas de un agente.
func (uc *AppointmentUseCase) ListByUser(ctx context.Context, userID int64) ([]*entity.Appointment, error) {
	return uc.ListBy(ctx, "user_id", userID)
}

// syncLead la cita ya está guardada: un fallo al mover el lead se registra pero no se propaga.
func (uc *AppointmentUseCase) syncLead(ctx context.Context, a *entity.Appointment) {
	if a.ListingContactID == nil {
		return
	}
	if err := uc.sync.SyncLeadStatusFromAppointment(ctx, *a.ListingContactID, a.Status); err != nil {
		uc.log.Error().Err(err).
			Int64("appointment_id", a.ID).
			Int64("lead_id", *a.ListingContactID).
			Msg("no se pudo sincronizar el estado del lead")
	}
}
