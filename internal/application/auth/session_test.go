package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func session(accountID int64, expires time.Time) *entity.Session {
	return &entity.Session{
		User:    entity.SessionUser{ID: 7, AccountID: accountID, Email: "a@b.es", Role: entity.RoleAgent},
		Session: entity.SessionInfo{ID: "s1", ExpiresAt: expires},
	}
}

// ── GetSecureSession ──

func TestGetSecureSession(t *testing.T) {
	r := auth.NewResolver(nil, zerolog.Nop())
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		ctx  context.Context
		ok   bool
	}{
		{"sin sesión", context.Background(), false},
		{"válida", auth.WithSession(context.Background(), session(3, future)), true},
		{"expirada", auth.WithSession(context.Background(), session(3, time.Now().Add(-time.Minute))), false},
		{"sin cuenta", auth.WithSession(context.Background(), session(0, future)), false},
		{"sin caducidad", auth.WithSession(context.Background(), session(3, time.Time{})), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := r.GetSecureSession(tt.ctx)
			assert.Equal(t, tt.ok, s != nil)
		})
	}
}

// ── CurrentAccountID / CurrentUser ──

func TestCurrentAccountID(t *testing.T) {
	r := auth.NewResolver(nil, zerolog.Nop())

	_, err := r.CurrentAccountID(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	ctx := auth.WithSession(context.Background(), session(42, time.Now().Add(time.Hour)))
	id, err := r.CurrentAccountID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestCurrentUser_DevuelveCopia(t *testing.T) {
	r := auth.NewResolver(nil, zerolog.Nop())
	s := session(42, time.Now().Add(time.Hour))
	ctx := auth.WithSession(context.Background(), s)

	u, err := r.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	u.AccountID = 99
	assert.Equal(t, int64(42), s.User.AccountID, "modificar el resultado no altera la sesión")
}

// ── VerifyAccountAccess ──

func TestVerifyAccountAccess(t *testing.T) {
	r := auth.NewResolver(nil, zerolog.Nop())
	ctx := auth.WithSession(context.Background(), session(42, time.Now().Add(time.Hour)))

	assert.True(t, r.VerifyAccountAccess(ctx, 42))
	assert.False(t, r.VerifyAccountAccess(ctx, 43))
	assert.False(t, r.VerifyAccountAccess(ctx, 0))
	assert.False(t, r.VerifyAccountAccess(context.Background(), 42))
}

// proveedor fijo, como lo sería uno basado en cookies
type staticProvider struct{ s *entity.Session }

func (p staticProvider) Session(context.Context) *entity.Session { return p.s }

func TestResolver_ProveedorPersonalizado(t *testing.T) {
	r := auth.NewResolver(staticProvider{session(5, time.Now().Add(time.Hour))}, zerolog.Nop())
	id, err := r.CurrentAccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}
