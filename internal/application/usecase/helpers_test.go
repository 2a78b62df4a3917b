package usecase_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres/pgtest"
)

type fixture struct {
	env      *pgtest.Env
	tn       pgtest.Tenant
	sessions *auth.Resolver
	ctx      context.Context
}

func setup(t *testing.T) fixture {
	t.Helper()
	env := pgtest.Open(t)
	tn := env.NewTenant(t, "luna")
	return fixture{
		env:      env,
		tn:       tn,
		sessions: auth.NewResolver(nil, zerolog.Nop()),
		ctx:      auth.WithSession(context.Background(), tn.Session(entity.RoleAgent)),
	}
}

// as contexto con la sesión de otro tenant o rol.
func as(tn pgtest.Tenant, role string) context.Context {
	return auth.WithSession(context.Background(), tn.Session(role))
}

func withSession(s *entity.Session) context.Context {
	return auth.WithSession(context.Background(), s)
}

// ── Mocks de puertos ──

type mockBlobs struct{ mock.Mock }

func (m *mockBlobs) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *mockBlobs) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockPortal struct{ mock.Mock }

func (m *mockPortal) Publish(ctx context.Context, l *entity.ListingWithDetails) (*dto.PortalPublishResult, error) {
	args := m.Called(ctx, l)
	res, _ := args.Get(0).(*dto.PortalPublishResult)
	return res, args.Error(1)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) DraftListingDescription(ctx context.Context, in dto.ListingDescriptionInput) (*dto.ListingDescriptionDTO, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*dto.ListingDescriptionDTO)
	return res, args.Error(1)
}

type mockCatastro struct{ mock.Mock }

func (m *mockCatastro) LookupByReference(ctx context.Context, ref string) (*dto.CadastralData, error) {
	args := m.Called(ctx, ref)
	res, _ := args.Get(0).(*dto.CadastralData)
	return res, args.Error(1)
}

type mockGeocoder struct{ mock.Mock }

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*dto.GeocodeResult, error) {
	args := m.Called(ctx, address)
	res, _ := args.Get(0).(*dto.GeocodeResult)
	return res, args.Error(1)
}
