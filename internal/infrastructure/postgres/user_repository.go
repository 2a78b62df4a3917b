package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.RoleRepository        = (*RoleRepo)(nil)
	_ repository.UserRoleRepository    = (*UserRoleRepo)(nil)
	_ repository.AccountRoleRepository = (*AccountRoleRepo)(nil)
)

// UserRepo implementación del puerto UserRepository.
type UserRepo struct {
	*scopedRepository[entity.User, *entity.User]
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *gorm.DB) *UserRepo {
	base := newScopedRepository[entity.User](db, "user")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, u *entity.User) error {
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
		if u.Email == "" || u.PasswordHash == "" {
			return fmt.Errorf("email y contraseña obligatorios: %w", domain.ErrValidation)
		}
		return setOwner(ctx, db, accountID, u)
	}
	return &UserRepo{scopedRepository: base}
}

// Create persiste un nuevo usuario; email repetido -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, accountID int64, u *entity.User) (*entity.User, error) {
	out, err := r.scopedRepository.Create(ctx, accountID, u)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, domain.ErrEmailAlreadyExists
	}
	return out, err
}

// GetByEmail obtiene un usuario por email (cualquier cuenta, activo o no).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrapErr("get user by email", err)
	}
	return &u, nil
}

// RoleRepo catálogo global de roles.
type RoleRepo struct {
	db *gorm.DB
}

// NewRoleRepository construye el repositorio de roles.
func NewRoleRepository(db *gorm.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

// EnsureCatalog crea los roles por defecto que falten. Idempotente.
func (r *RoleRepo) EnsureCatalog(ctx context.Context) ([]entity.Role, error) {
	db := r.db.WithContext(ctx)
	out := make([]entity.Role, 0, len(entity.DefaultRoles()))
	for _, def := range entity.DefaultRoles() {
		role := def
		if err := db.Where(entity.Role{Code: def.Code}).Attrs(def).FirstOrCreate(&role).Error; err != nil {
			return nil, wrapErr("ensure role "+def.Code, err)
		}
		out = append(out, role)
	}
	return out, nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&role).Error; err != nil {
		return nil, wrapErr("get role", err)
	}
	return &role, nil
}

func (r *RoleRepo) GetByCode(ctx context.Context, code string) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).Where("code = ?", code).Take(&role).Error; err != nil {
		return nil, wrapErr("get role by code", err)
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, wrapErr("list roles", err)
	}
	return roles, nil
}

// UserRoleRepo asignación de rol a usuario. El usuario debe existir; la cuenta la valida el caso de uso.
type UserRoleRepo struct {
	db *gorm.DB
}

// NewUserRoleRepository construye el repositorio.
func NewUserRoleRepository(db *gorm.DB) *UserRoleRepo {
	return &UserRoleRepo{db: db}
}

// Assign fija el rol del usuario (upsert sobre user_id).
func (r *UserRoleRepo) Assign(ctx context.Context, userID, roleID int64) error {
	ur := entity.UserRole{UserID: userID, RoleID: roleID}
	ur.Activate()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role_id", "is_active", "updated_at"}),
	}).Create(&ur).Error
	if err != nil {
		return wrapErr("assign role", err)
	}
	return nil
}

// RoleOf rol activo del usuario; ErrNotFound si no tiene.
func (r *UserRoleRepo) RoleOf(ctx context.Context, userID int64) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND user_roles.is_active = ?", userID, true).
		Take(&role).Error
	if err != nil {
		return nil, wrapErr("role of user", err)
	}
	return &role, nil
}

// AccountRoleRepo permisos de cada rol dentro de una cuenta.
type AccountRoleRepo struct {
	*scopedRepository[entity.AccountRole, *entity.AccountRole]
}

// NewAccountRoleRepository construye el repositorio.
func NewAccountRoleRepository(db *gorm.DB) *AccountRoleRepo {
	base := newScopedRepository[entity.AccountRole](db, "account role")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, ar *entity.AccountRole) error {
		if _, err := ar.TypedPermissions(); err != nil {
			return fmt.Errorf("%v: %w", err, domain.ErrValidation)
		}
		return setOwner(ctx, db, accountID, ar)
	}
	return &AccountRoleRepo{scopedRepository: base}
}

// GetByRole configuración del rol en la cuenta.
func (r *AccountRoleRepo) GetByRole(ctx context.Context, accountID, roleID int64) (*entity.AccountRole, error) {
	return r.first(ctx, "get account role", accountID,
		clause.Eq{Column: col("role_id"), Value: roleID}, activeOnly())
}
