package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// UserUseCase usuarios de la cuenta, sus roles y los permisos por rol.
type UserUseCase struct {
	repos    repository.Repos
	tx       ports.TxRunner
	sessions *auth.Resolver
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repos repository.Repos, tx ports.TxRunner, sessions *auth.Resolver) *UserUseCase {
	return &UserUseCase{repos: repos, tx: tx, sessions: sessions}
}

// CreateUserWithRole crea el usuario y le asigna el rol en una transacción.
func (uc *UserUseCase) CreateUserWithRole(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var created *entity.User
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		role, err := r.Roles.GetByCode(ctx, in.Role)
		if err != nil {
			return err
		}
		created, err = r.Users.Create(ctx, accountID, &entity.User{
			Email:        in.Email,
			PasswordHash: string(hash),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Phone:        in.Phone,
		})
		if err != nil {
			return err
		}
		return r.UserRoles.Assign(ctx, created.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(created, in.Role), nil
}

// UpdateUserRole cambia el rol de un usuario de la cuenta.
func (uc *UserUseCase) UpdateUserRole(ctx context.Context, userID int64, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if in.Role != entity.RoleAgent && in.Role != entity.RoleAccountAdmin {
		return nil, fmt.Errorf("rol %q no asignable: %w", in.Role, domain.ErrValidation)
	}
	me, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if me.ID == userID && in.Role != entity.RoleAccountAdmin {
		return nil, fmt.Errorf("no puedes quitarte el rol de administrador: %w", domain.ErrConflict)
	}
	var user *entity.User
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		user, err = r.Users.GetByID(ctx, me.AccountID, userID)
		if err != nil {
			return err
		}
		role, err := r.Roles.GetByCode(ctx, in.Role)
		if err != nil {
			return err
		}
		return r.UserRoles.Assign(ctx, user.ID, role.ID)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user, in.Role), nil
}

// Get usuario con su rol.
func (uc *UserUseCase) Get(ctx context.Context, id int64) (*dto.UserResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := uc.repos.Users.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u, uc.roleCode(ctx, u.ID)), nil
}

// List usuarios activos de la cuenta.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.UserResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.repos.Users.List(ctx, accountID, repository.ListParams{Page: page.Page, Limit: page.Limit})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u, uc.roleCode(ctx, u.ID)))
	}
	return out, nil
}

// Update datos personales de un usuario.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := uc.repos.Users.Update(ctx, accountID, id, dto.PatchFields(in))
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u, uc.roleCode(ctx, u.ID)), nil
}

// Deactivate baja lógica; un usuario no puede darse de baja a sí mismo.
func (uc *UserUseCase) Deactivate(ctx context.Context, id int64) error {
	me, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if me.ID == id {
		return fmt.Errorf("no puedes desactivar tu propio usuario: %w", domain.ErrConflict)
	}
	ok, err := uc.repos.Users.SoftDelete(ctx, me.AccountID, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("deactivate user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (uc *UserUseCase) roleCode(ctx context.Context, userID int64) string {
	role, err := uc.repos.UserRoles.RoleOf(ctx, userID)
	if err != nil {
		return ""
	}
	return role.Code
}

// ── Roles de cuenta ──

// InitializeAccountRoles crea en una transacción la configuración de cada rol que falte.
// Es idempotente.
func (uc *UserUseCase) InitializeAccountRoles(ctx context.Context) ([]*dto.AccountRoleResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.tx.Run(ctx, func(r repository.Repos) error {
		return auth.InitAccountRoles(ctx, r, accountID)
	}); err != nil {
		return nil, err
	}
	return uc.ListAccountRoles(ctx)
}

// ListAccountRoles permisos de cada rol del catálogo en la cuenta actual.
func (uc *UserUseCase) ListAccountRoles(ctx context.Context) ([]*dto.AccountRoleResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := uc.repos.Roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountRoleResponse, 0, len(roles))
	for _, role := range roles {
		ar, err := uc.repos.AccountRoles.GetByRole(ctx, accountID, role.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		perms, err := ar.TypedPermissions()
		if err != nil {
			return nil, fmt.Errorf("permisos del rol %s: %v: %w", role.Code, err, domain.ErrValidation)
		}
		out = append(out, &dto.AccountRoleResponse{ID: ar.ID, RoleID: role.ID, RoleCode: role.Code, Permissions: perms})
	}
	return out, nil
}

// UpdateRolePermissions reemplaza los permisos de un rol en la cuenta.
func (uc *UserUseCase) UpdateRolePermissions(ctx context.Context, roleCode string, in dto.UpdatePermissionsRequest) (*dto.AccountRoleResponse, error) {
	accountID, err := uc.sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	if in.Permissions.Version == 0 {
		in.Permissions.Version = entity.PermissionsVersion
	}
	raw, err := entity.EncodePermissions(in.Permissions)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrValidation)
	}
	role, err := uc.repos.Roles.GetByCode(ctx, roleCode)
	if err != nil {
		return nil, err
	}
	ar, err := uc.repos.AccountRoles.GetByRole(ctx, accountID, role.ID)
	if err != nil {
		return nil, err
	}
	ar, err = uc.repos.AccountRoles.Update(ctx, accountID, ar.ID, map[string]any{"permissions": raw})
	if err != nil {
		return nil, err
	}
	return &dto.AccountRoleResponse{ID: ar.ID, RoleID: role.ID, RoleCode: role.Code, Permissions: in.Permissions}, nil
}
