// Package website configuración de la web pública de cada cuenta, una sección JSON por columna.
package website

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// Store lee y escribe secciones de la configuración de la cuenta actual.
type Store struct {
	repo     repository.WebsiteConfigRepository
	sessions *auth.Resolver
	log      zerolog.Logger
}

// NewStore construye el store.
func NewStore(repo repository.WebsiteConfigRepository, sessions *auth.Resolver, log zerolog.Logger) *Store {
	return &Store{repo: repo, sessions: sessions, log: log.With().Str("component", "website-config").Logger()}
}

// Get sección tipada, o nil si no hay sesión, fila o datos válidos. Los fallos se registran como aviso.
func (s *Store) Get(ctx context.Context, section entity.WebsiteSection) entity.SectionSchema {
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil
	}
	row, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Int64("account_id", accountID).Msg("no se pudo leer la configuración web")
		}
		return nil
	}
	return s.decode(accountID, row, section)
}

// GetAll todas las secciones válidas de la cuenta; las ausentes o inválidas se omiten.
func (s *Store) GetAll(ctx context.Context) map[entity.WebsiteSection]entity.SectionSchema {
	out := map[entity.WebsiteSection]entity.SectionSchema{}
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return out
	}
	row, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Int64("account_id", accountID).Msg("no se pudo leer la configuración web")
		}
		return out
	}
	for _, section := range entity.WebsiteSections {
		if schema := s.decode(accountID, row, section); schema != nil {
			out[section] = schema
		}
	}
	return out
}

func (s *Store) decode(accountID int64, row *entity.WebsiteConfiguration, section entity.WebsiteSection) entity.SectionSchema {
	raw := row.Raw(section)
	if len(raw) == 0 {
		return nil
	}
	schema, err := entity.DecodeSection(section, raw)
	if err != nil {
		s.log.Warn().Err(err).
			Int64("account_id", accountID).
			Str("section", string(section)).
			Msg("sección de la web inválida")
		return nil
	}
	return schema
}

// Save valida y reemplaza una sección. La fila de la cuenta se crea en la primera escritura.
func (s *Store) Save(ctx context.Context, section entity.WebsiteSection, raw []byte) (entity.SectionSchema, error) {
	accountID, err := s.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if section.Column() == "" {
		return nil, fmt.Errorf("sección %q desconocida: %w", section, domain.ErrValidation)
	}
	schema, err := entity.DecodeSection(section, raw)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	if err := s.repo.UpsertSection(ctx, accountID, section, raw); err != nil {
		return nil, err
	}
	s.log.Info().Int64("account_id", accountID).Str("section", string(section)).Msg("sección de la web guardada")
	return schema, nil
}
