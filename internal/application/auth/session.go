package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// SessionProvider origen de la sesión de la petición en curso.
type SessionProvider interface {
	Session(ctx context.Context) *entity.Session
}

type sessionKey struct{}

// WithSession guarda la sesión en el contexto (lo hace el middleware JWT).
func WithSession(ctx context.Context, s *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// ContextSessionProvider lee la sesión guardada por WithSession.
type ContextSessionProvider struct{}

func (ContextSessionProvider) Session(ctx context.Context) *entity.Session {
	s, _ := ctx.Value(sessionKey{}).(*entity.Session)
	return s
}

// Resolver resuelve la sesión segura y la cuenta del usuario actual.
type Resolver struct {
	provider SessionProvider
	log      zerolog.Logger
	now      func() time.Time
}

// NewResolver construye el resolver. Con provider nil usa ContextSessionProvider.
func NewResolver(provider SessionProvider, log zerolog.Logger) *Resolver {
	if provider == nil {
		provider = ContextSessionProvider{}
	}
	return &Resolver{provider: provider, log: log.With().Str("component", "session").Logger(), now: time.Now}
}

// GetSecureSession sesión válida o nil: sin sesión, expirada o sin cuenta. Nunca devuelve error.
func (r *Resolver) GetSecureSession(ctx context.Context) *entity.Session {
	s := r.provider.Session(ctx)
	if s == nil {
		return nil
	}
	if s.Expired(r.now()) {
		return nil
	}
	if s.User.AccountID <= 0 {
		r.log.Error().
			Int64("user_id", s.User.ID).
			Str("session_id", s.Session.ID).
			Msg("sesión sin cuenta asociada")
		return nil
	}
	return s
}

// CurrentAccountID cuenta de la sesión; domain.ErrUnauthenticated si no hay sesión válida.
func (r *Resolver) CurrentAccountID(ctx context.Context) (int64, error) {
	s := r.GetSecureSession(ctx)
	if s == nil {
		return 0, domain.ErrUnauthenticated
	}
	return s.User.AccountID, nil
}

// CurrentUser usuario de la sesión; domain.ErrUnauthenticated si no hay sesión válida.
func (r *Resolver) CurrentUser(ctx context.Context) (*entity.SessionUser, error) {
	s := r.GetSecureSession(ctx)
	if s == nil {
		return nil, domain.ErrUnauthenticated
	}
	u := s.User
	return &u, nil
}

// VerifyAccountAccess true solo si hay sesión y la cuenta del recurso coincide.
func (r *Resolver) VerifyAccountAccess(ctx context.Context, resourceAccountID int64) bool {
	s := r.GetSecureSession(ctx)
	return s != nil && resourceAccountID > 0 && s.User.AccountID == resourceAccountID
}
