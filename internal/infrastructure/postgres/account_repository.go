package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepository)(nil)

// AccountRepository persistencia de cuentas (raíz del tenant, sin predicado de cuenta).
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository construye el repositorio.
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserta la cuenta activa.
func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) (*entity.Account, error) {
	a.Slug = strings.TrimSpace(strings.ToLower(a.Slug))
	a.IsActive = true
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, wrapErr("create account", err)
	}
	return a, nil
}

// GetByID obtiene una cuenta por id.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	var a entity.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error; err != nil {
		return nil, wrapErr("get account", err)
	}
	return &a, nil
}

// GetBySlug obtiene una cuenta por su slug.
func (r *AccountRepository) GetBySlug(ctx context.Context, slug string) (*entity.Account, error) {
	var a entity.Account
	err := r.db.WithContext(ctx).Where("slug = ?", strings.ToLower(slug)).Take(&a).Error
	if err != nil {
		return nil, wrapErr("get account by slug", err)
	}
	return &a, nil
}

// Update modifica datos de la cuenta; id y slug no son editables.
func (r *AccountRepository) Update(ctx context.Context, id int64, fields map[string]any) (*entity.Account, error) {
	delete(fields, "id")
	delete(fields, "slug")
	delete(fields, "created_at")
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&entity.Account{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, wrapErr("update account", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update account: %w", domain.ErrNotFound)
		}
	}
	return r.GetByID(ctx, id)
}
