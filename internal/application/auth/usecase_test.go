package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres/pgtest"
	"github.com/jhoicas/crm-inmobiliario/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth(t *testing.T) (*auth.AuthUseCase, *pgtest.Env) {
	t.Helper()
	env := pgtest.Open(t)
	sessions := auth.NewResolver(nil, zerolog.Nop())
	uc := auth.NewAuthUseCase(env.Repos, env.Tx, sessions,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "crm-test"}, zerolog.Nop())
	return uc, env
}

func signupReq(email string) dto.SignupRequest {
	return dto.SignupRequest{
		AccountName: "Inmobiliaria Peñalver",
		Email:       email,
		Password:    "contraseña-larga",
		FirstName:   "Marta",
		LastName:    "Ruiz",
	}
}

// ── Signup ──

func TestSignup_CreaCuentaRolesYAdministrador(t *testing.T) {
	uc, env := newAuth(t)
	ctx := context.Background()

	res, err := uc.Signup(ctx, signupReq("marta@penalver.es"))
	require.NoError(t, err)
	assert.Equal(t, "inmobiliaria-penalver", res.Account.Slug)
	assert.Equal(t, entity.RoleAccountAdmin, res.User.Role)
	assert.NotEmpty(t, res.Token)

	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Account.ID, claims.AccountID)
	assert.Equal(t, entity.RoleAccountAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	// cada rol del catálogo tiene su configuración en la cuenta
	roles, err := env.Repos.Roles.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, roles)
	for _, role := range roles {
		ar, err := env.Repos.AccountRoles.GetByRole(ctx, res.Account.ID, role.ID)
		require.NoError(t, err, role.Code)
		perms, err := ar.TypedPermissions()
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultPermissions(role.Code), perms)
	}
}

func TestSignup_SlugRepetidoLlevaSufijo(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	first, err := uc.Signup(ctx, signupReq("uno@penalver.es"))
	require.NoError(t, err)
	second, err := uc.Signup(ctx, signupReq("dos@penalver.es"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Account.Slug, second.Account.Slug)
	assert.Contains(t, second.Account.Slug, "inmobiliaria-penalver-")
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, signupReq("marta@penalver.es"))
	require.NoError(t, err)
	_, err = uc.Signup(ctx, signupReq("marta@penalver.es"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSignup_Validacion(t *testing.T) {
	uc, _ := newAuth(t)
	req := signupReq("no-es-un-email")
	_, err := uc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = signupReq("ok@penalver.es")
	req.Password = "corta"
	_, err = uc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Login ──

func TestLogin_OK(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	signup, err := uc.Signup(ctx, signupReq("marta@penalver.es"))
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "marta@penalver.es", Password: "contraseña-larga"})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, res.User.ID)
	assert.Equal(t, signup.Account.ID, res.User.AccountID)
	assert.Equal(t, entity.RoleAccountAdmin, res.User.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Signup(ctx, signupReq("marta@penalver.es"))
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "marta@penalver.es", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@penalver.es", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	uc, env := newAuth(t)
	ctx := context.Background()
	signup, err := uc.Signup(ctx, signupReq("marta@penalver.es"))
	require.NoError(t, err)

	ok, err := env.Repos.Users.SoftDelete(ctx, signup.Account.ID, signup.User.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "marta@penalver.es", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Me ──

func TestMe(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	ctx := auth.WithSession(context.Background(), session(9, time.Now().Add(time.Hour)))
	u, err := uc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.AccountID)
}

// ── InitAccountRoles ──

func TestInitAccountRoles_Idempotente(t *testing.T) {
	_, env := newAuth(t)
	ctx := context.Background()
	tn := env.NewTenant(t, "idem")

	require.NoError(t, auth.InitAccountRoles(ctx, env.Repos, tn.ID()))
	require.NoError(t, auth.InitAccountRoles(ctx, env.Repos, tn.ID()))

	roles, err := env.Repos.Roles.List(ctx)
	require.NoError(t, err)
	for _, role := range roles {
		_, err := env.Repos.AccountRoles.GetByRole(ctx, tn.ID(), role.ID)
		assert.NoError(t, err, role.Code)
	}
}
