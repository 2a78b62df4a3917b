package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/pkg/textnorm"
)

var (
	_ repository.ContactRepository     = (*ContactRepo)(nil)
	_ repository.UserCommentRepository = (*UserCommentRepo)(nil)
)

// ContactRepo contactos de la cuenta.
type ContactRepo struct {
	*scopedRepository[entity.Contact, *entity.Contact]
}

// NewContactRepository construye el repositorio de contactos.
func NewContactRepository(db *gorm.DB) *ContactRepo {
	base := newScopedRepository[entity.Contact](db, "contact")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, c *entity.Contact) error {
		c.Email = strings.ToLower(strings.TrimSpace(c.Email))
		c.SearchKey = contactSearchKey(c.FirstName, c.LastName, c.Email, c.Phone)
		return setOwner(ctx, db, accountID, c)
	}
	return &ContactRepo{scopedRepository: base}
}

func contactSearchKey(first, last, email, phone string) string {
	return textnorm.Fold(strings.Join([]string{first, last, email, strings.ReplaceAll(phone, " ", "")}, " "))
}

// Update recalcula search_key cuando cambia algún campo indexado.
func (r *ContactRepo) Update(ctx context.Context, accountID, id int64, fields map[string]any) (*entity.Contact, error) {
	touched := false
	for _, k := range []string{"first_name", "last_name", "email", "phone"} {
		if _, ok := fields[k]; ok {
			touched = true
		}
	}
	if !touched {
		return r.scopedRepository.Update(ctx, accountID, id, fields)
	}
	current, err := r.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	if v, ok := fields["first_name"].(string); ok {
		merged.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		merged.LastName = v
	}
	if v, ok := fields["email"].(string); ok {
		merged.Email = strings.ToLower(strings.TrimSpace(v))
		fields["email"] = merged.Email
	}
	if v, ok := fields["phone"].(string); ok {
		merged.Phone = v
	}
	fields["search_key"] = contactSearchKey(merged.FirstName, merged.LastName, merged.Email, merged.Phone)
	return r.scopedRepository.Update(ctx, accountID, id, fields)
}

// Search coincidencia parcial sobre search_key; todas las palabras deben aparecer.
func (r *ContactRepo) Search(ctx context.Context, accountID int64, q string, limit int) ([]*entity.Contact, error) {
	if limit < 1 || limit > repository.MaxPageSize {
		limit = 20
	}
	exprs := []clause.Expression{activeOnly()}
	for _, word := range strings.Fields(textnorm.Fold(q)) {
		word = strings.ReplaceAll(word, "%", "")
		if word == "" {
			continue
		}
		exprs = append(exprs, clause.Like{Column: col("search_key"), Value: "%" + word + "%"})
	}
	scope, err := r.scope(accountID, exprs...)
	if err != nil {
		return nil, err
	}
	var out []*entity.Contact
	err = r.db.WithContext(ctx).Scopes(scope).Order(orderByID).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, wrapErr("search contacts", err)
	}
	return out, nil
}

// UserCommentRepo notas privadas de un usuario sobre un contacto.
type UserCommentRepo struct {
	*scopedRepository[entity.UserComment, *entity.UserComment]
}

// NewUserCommentRepository construye el repositorio.
func NewUserCommentRepository(db *gorm.DB) *UserCommentRepo {
	base := newScopedRepository[entity.UserComment](db, "user comment")
	base.prepare = func(ctx context.Context, db *gorm.DB, accountID int64, c *entity.UserComment) error {
		if err := ensureOwned(ctx, db, "contacts", c.ContactID, accountID); err != nil {
			return err
		}
		return setOwner(ctx, db, accountID, c)
	}
	base.references = map[string]string{"contact_id": "contacts"}
	return &UserCommentRepo{scopedRepository: base}
}
