// Package leads mantiene el estado del lead comprador alineado con sus citas y visitas.
package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/lead"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// Synchronizer aplica las tablas de transición de internal/domain/lead sobre listing_contacts.
type Synchronizer struct {
	leads    repository.LeadRepository
	tx       ports.TxRunner
	sessions *auth.Resolver
	log      zerolog.Logger
}

// NewSynchronizer construye el sincronizador.
func NewSynchronizer(leads repository.LeadRepository, tx ports.TxRunner, sessions *auth.Resolver, log zerolog.Logger) *Synchronizer {
	return &Synchronizer{leads: leads, tx: tx, sessions: sessions, log: log.With().Str("component", "lead-sync").Logger()}
}

// FindLeadByContactAndListing lead comprador activo del contacto; sin listing, el primero por id.
func (s *Synchronizer) FindLeadByContactAndListing(ctx context.Context, contactID int64, listingID *int64) (*entity.ListingContact, error) {
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return s.leads.FindBuyerLead(ctx, accountID, contactID, listingID)
}

// FindOrCreateLeadForAppointment devuelve el lead del contacto para el anuncio o lo crea.
// Todo ocurre en una transacción que bloquea la fila del contacto, de modo que dos citas
// simultáneas del mismo contacto no crean dos leads.
func (s *Synchronizer) FindOrCreateLeadForAppointment(ctx context.Context, contactID int64, listingID, prospectID *int64) (*dto.LeadRef, error) {
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	var ref *dto.LeadRef
	err = s.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Leads.LockContact(ctx, accountID, contactID); err != nil {
			return err
		}
		existing, err := r.Leads.FindBuyerLead(ctx, accountID, contactID, listingID)
		if err == nil {
			ref = &dto.LeadRef{ID: existing.ID, Created: false}
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		created, err := r.Leads.Create(ctx, accountID, &entity.ListingContact{
			ContactID:   contactID,
			ListingID:   listingID,
			ProspectID:  prospectID,
			ContactType: entity.ContactTypeBuyer,
			Status:      entity.LeadStatusCitaPendiente,
			Source:      entity.LeadSourceAppointment,
		})
		if err != nil {
			return err
		}
		ref = &dto.LeadRef{ID: created.ID, Created: true}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find-or-create lead: %w", err)
	}
	if ref.Created {
		s.log.Info().Int64("account_id", accountID).Int64("lead_id", ref.ID).Int64("contact_id", contactID).Msg("lead creado desde cita")
	}
	return ref, nil
}

// SyncLeadStatusFromAppointment ajusta el lead al estado de la cita.
// Un estado sin transición deja el lead como está y solo registra un aviso.
func (s *Synchronizer) SyncLeadStatusFromAppointment(ctx context.Context, leadID int64, status entity.AppointmentStatus) error {
	next, ok := lead.StatusForAppointment(status)
	if !ok {
		s.log.Warn().Int64("lead_id", leadID).Str("appointment_status", string(status)).Msg("estado de cita sin transición de lead")
		return nil
	}
	return s.setStatus(ctx, leadID, next)
}

// UpdateLeadStatusFromVisitOutcome ajusta el lead tras registrar el resultado de una visita.
func (s *Synchronizer) UpdateLeadStatusFromVisitOutcome(ctx context.Context, leadID int64, outcome entity.VisitOutcome) error {
	next, ok := lead.StatusForVisitOutcome(outcome)
	if !ok {
		return fmt.Errorf("resultado de visita %q: %w", outcome, domain.ErrValidation)
	}
	return s.setStatus(ctx, leadID, next)
}

// UpdateStatus cambio manual del estado de un lead.
func (s *Synchronizer) UpdateStatus(ctx context.Context, leadID int64, status entity.LeadStatus) (*entity.ListingContact, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("estado de lead %q: %w", status, domain.ErrValidation)
	}
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return s.leads.Update(ctx, accountID, leadID, map[string]any{"status": status})
}

func (s *Synchronizer) setStatus(ctx context.Context, leadID int64, next entity.LeadStatus) error {
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return err
	}
	current, err := s.leads.GetByID(ctx, accountID, leadID)
	if err != nil {
		return err
	}
	if current.Status == next {
		return nil
	}
	if _, err := s.leads.Update(ctx, accountID, leadID, map[string]any{"status": next}); err != nil {
		return err
	}
	s.log.Debug().Int64("lead_id", leadID).Str("from", string(current.Status)).Str("to", string(next)).Msg("estado de lead actualizado")
	return nil
}
