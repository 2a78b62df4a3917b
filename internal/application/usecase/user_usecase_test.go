package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func adminFixture(t *testing.T) (fixture, *usecase.UserUseCase, context.Context) {
	t.Helper()
	f := setup(t)
	uc := usecase.NewUserUseCase(f.env.Repos, f.env.Tx, f.sessions)
	return f, uc, as(f.tn, entity.RoleAccountAdmin)
}

func TestUserCreateWithRole(t *testing.T) {
	_, uc, ctx := adminFixture(t)

	u, err := uc.CreateUserWithRole(ctx, dto.CreateUserRequest{
		Email:     "Nuevo@Luna.es",
		Password:  "contraseña-segura",
		FirstName: "Hugo",
		Role:      entity.RoleAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@luna.es", u.Email)
	assert.Equal(t, entity.RoleAgent, u.Role)

	got, err := uc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAgent, got.Role)

	_, err = uc.CreateUserWithRole(ctx, dto.CreateUserRequest{
		Email: "nuevo@luna.es", Password: "contraseña-segura", FirstName: "Otro", Role: entity.RoleAgent,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateUserWithRole(ctx, dto.CreateUserRequest{
		Email: "raro@luna.es", Password: "contraseña-segura", FirstName: "Raro", Role: entity.RoleSuperAdmin,
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUserUpdateRole(t *testing.T) {
	f, uc, ctx := adminFixture(t)
	u, err := uc.CreateUserWithRole(ctx, dto.CreateUserRequest{
		Email: "eva@luna.es", Password: "contraseña-segura", FirstName: "Eva", Role: entity.RoleAgent,
	})
	require.NoError(t, err)

	promoted, err := uc.UpdateUserRole(ctx, u.ID, dto.UpdateRoleRequest{Role: entity.RoleAccountAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAccountAdmin, promoted.Role)

	// un administrador no puede quitarse el rol a sí mismo
	_, err = uc.UpdateUserRole(ctx, f.tn.Agent.ID, dto.UpdateRoleRequest{Role: entity.RoleAgent})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserDeactivate(t *testing.T) {
	f, uc, ctx := adminFixture(t)
	u, err := uc.CreateUserWithRole(ctx, dto.CreateUserRequest{
		Email: "leo@luna.es", Password: "contraseña-segura", FirstName: "Leo", Role: entity.RoleAgent,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Deactivate(ctx, f.tn.Agent.ID), domain.ErrConflict)
	require.NoError(t, uc.Deactivate(ctx, u.ID))
	assert.ErrorIs(t, uc.Deactivate(ctx, u.ID), domain.ErrNotFound)

	users, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	for _, x := range users {
		assert.NotEqual(t, u.ID, x.ID)
	}
}

func TestUserRolePermissions(t *testing.T) {
	_, uc, ctx := adminFixture(t)

	roles, err := uc.InitializeAccountRoles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, roles)

	again, err := uc.InitializeAccountRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(roles), "idempotente")

	perms := entity.Permissions{Grants: map[string][]string{"listings": {"read", "write", "delete"}}}
	updated, err := uc.UpdateRolePermissions(ctx, entity.RoleAgent, dto.UpdatePermissionsRequest{Permissions: perms})
	require.NoError(t, err)
	assert.Equal(t, entity.PermissionsVersion, updated.Permissions.Version)

	list, err := uc.ListAccountRoles(ctx)
	require.NoError(t, err)
	for _, r := range list {
		if r.RoleCode == entity.RoleAgent {
			assert.True(t, r.Permissions.Allows("listings", "delete"))
			assert.False(t, r.Permissions.Allows("website", "read"))
		}
	}

	_, err = uc.UpdateRolePermissions(ctx, "inexistente", dto.UpdatePermissionsRequest{Permissions: perms})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
