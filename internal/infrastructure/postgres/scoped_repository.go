package postgres

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// columnas que Update nunca modifica.
var protectedColumns = map[string]bool{
	"id": true, "account_id": true, "is_active": true, "created_at": true, "updated_at": true,
}

// orden de creación; da paginación determinista.
var orderByID = clause.OrderByColumn{Column: col("id")}

// scopedRepository implementa repository.Scoped[T] para cualquier entidad con baja lógica.
// Cada consulta pasa por withPredicate, que añade el predicado de cuenta y falla cerrado.
type scopedRepository[T any, PT interface {
	*T
	PrimaryKey() int64
}] struct {
	db        *gorm.DB
	name      string
	predicate accountPredicate
	// prepare completa o valida la entidad antes de insertarla (propietario, padre, invariantes).
	prepare func(ctx context.Context, db *gorm.DB, accountID int64, e *T) error
	// references columna de clave ajena -> tabla referenciada; Update comprueba que es de la cuenta.
	references map[string]string

	once      sync.Once
	columns   map[string]bool
	schemaErr error
}

func newScopedRepository[T any, PT interface {
	*T
	PrimaryKey() int64
}](db *gorm.DB, name string) *scopedRepository[T, PT] {
	return &scopedRepository[T, PT]{
		db:        db,
		name:      name,
		predicate: directAccount,
		prepare:   setOwner[T],
	}
}

// setOwner fija account_id en entidades con columna directa.
func setOwner[T any](_ context.Context, _ *gorm.DB, accountID int64, e *T) error {
	owned, ok := any(e).(interface{ SetAccountID(int64) })
	if !ok {
		return fmt.Errorf("%T no tiene columna account_id", e)
	}
	owned.SetAccountID(accountID)
	return nil
}

func (r *scopedRepository[T, PT]) scope(accountID int64, extra ...clause.Expression) (func(*gorm.DB) *gorm.DB, error) {
	return withPredicate(r.predicate, accountID, extra...)
}

// columnSet columnas reales de la tabla, leídas del esquema GORM.
func (r *scopedRepository[T, PT]) columnSet() (map[string]bool, error) {
	r.once.Do(func() {
		stmt := &gorm.Statement{DB: r.db}
		if err := stmt.Parse(new(T)); err != nil {
			r.schemaErr = err
			return
		}
		r.columns = make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			r.columns[name] = true
		}
	})
	return r.columns, r.schemaErr
}

func (r *scopedRepository[T, PT]) checkColumn(op, column string) error {
	cols, err := r.columnSet()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, r.name, err)
	}
	if !cols[column] {
		return fmt.Errorf("%s %s: columna %q: %w", op, r.name, column, domain.ErrValidation)
	}
	return nil
}

func (r *scopedRepository[T, PT]) filterExprs(op string, filters map[string]any) ([]clause.Expression, error) {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	exprs := make([]clause.Expression, 0, len(keys)+1)
	for _, k := range keys {
		if err := r.checkColumn(op, k); err != nil {
			return nil, err
		}
		exprs = append(exprs, filterExpr(k, filters[k]))
	}
	return exprs, nil
}

// Create inserta con is_active=true y relee la fila por su id generado.
func (r *scopedRepository[T, PT]) Create(ctx context.Context, accountID int64, e *T) (*T, error) {
	if accountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	db := r.db.WithContext(ctx)
	if err := r.prepare(ctx, db, accountID, e); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.name, err)
	}
	if a, ok := any(e).(interface{ Activate() }); ok {
		a.Activate()
	}
	if err := db.Create(e).Error; err != nil {
		return nil, wrapErr("create "+r.name, err)
	}
	return r.GetByID(ctx, accountID, PT(e).PrimaryKey())
}

// GetByID solo filas activas.
func (r *scopedRepository[T, PT]) GetByID(ctx context.Context, accountID, id int64) (*T, error) {
	return r.first(ctx, "get "+r.name, accountID, idEq(id), activeOnly())
}

// GetByIDIncludingInactive incluye filas con baja lógica.
func (r *scopedRepository[T, PT]) GetByIDIncludingInactive(ctx context.Context, accountID, id int64) (*T, error) {
	return r.first(ctx, "get "+r.name, accountID, idEq(id))
}

func (r *scopedRepository[T, PT]) first(ctx context.Context, op string, accountID int64, exprs ...clause.Expression) (*T, error) {
	scope, err := r.scope(accountID, exprs...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scope).Order(orderByID).Take(&out).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return &out, nil
}

func (r *scopedRepository[T, PT]) find(ctx context.Context, op string, accountID int64, order interface{}, exprs ...clause.Expression) ([]*T, error) {
	scope, err := r.scope(accountID, exprs...)
	if err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Model(new(T)).Scopes(scope)
	if order != nil {
		q = q.Order(order)
	}
	var out []*T
	if err := q.Find(&out).Error; err != nil {
		return nil, wrapErr(op, err)
	}
	return out, nil
}

// ListBy filas activas con column = value (getByForeignKey).
func (r *scopedRepository[T, PT]) ListBy(ctx context.Context, accountID int64, column string, value any) ([]*T, error) {
	if err := r.checkColumn("list", column); err != nil {
		return nil, err
	}
	return r.find(ctx, "list "+r.name, accountID, orderByID, filterExpr(column, value), activeOnly())
}

// Update aplica columnas parciales a una fila activa y la relee.
func (r *scopedRepository[T, PT]) Update(ctx context.Context, accountID, id int64, fields map[string]any) (*T, error) {
	scope, err := r.scope(accountID, idEq(id), activeOnly())
	if err != nil {
		return nil, err
	}
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if protectedColumns[k] {
			continue
		}
		if err := r.checkColumn("update", k); err != nil {
			return nil, err
		}
		clean[k] = v
	}
	if err := r.checkReferences(ctx, accountID, clean); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.name, err)
	}
	if len(clean) > 0 {
		res := r.db.WithContext(ctx).Model(new(T)).Scopes(scope).Updates(clean)
		if res.Error != nil {
			return nil, wrapErr("update "+r.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update %s: %w", r.name, domain.ErrNotFound)
		}
	}
	return r.GetByID(ctx, accountID, id)
}

// checkReferences verifica que cada clave ajena modificada apunta a una fila de la cuenta.
// Un valor nulo desvincula y no se comprueba.
func (r *scopedRepository[T, PT]) checkReferences(ctx context.Context, accountID int64, fields map[string]any) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := r.references[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		id, ok, err := refID(fields[k])
		if err != nil {
			return fmt.Errorf("columna %q: %w", k, err)
		}
		if !ok {
			continue
		}
		if err := ensureOwned(ctx, r.db, r.references[k], id, accountID); err != nil {
			return err
		}
	}
	return nil
}

func refID(v any) (int64, bool, error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case int64:
		return x, true, nil
	case *int64:
		if x == nil {
			return 0, false, nil
		}
		return *x, true, nil
	case int:
		return int64(x), true, nil
	default:
		return 0, false, fmt.Errorf("id %v de tipo %T: %w", v, v, domain.ErrValidation)
	}
}

// SoftDelete marca is_active=false.
func (r *scopedRepository[T, PT]) SoftDelete(ctx context.Context, accountID, id int64) (bool, error) {
	scope, err := r.scope(accountID, idEq(id), activeOnly())
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Model(new(T)).Scopes(scope).Update("is_active", false)
	if res.Error != nil {
		return false, wrapErr("soft delete "+r.name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// HardDelete borra físicamente la fila (activa o no).
func (r *scopedRepository[T, PT]) HardDelete(ctx context.Context, accountID, id int64) (bool, error) {
	scope, err := r.scope(accountID, idEq(id))
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Scopes(scope).Delete(new(T))
	if res.Error != nil {
		return false, wrapErr("hard delete "+r.name, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List paginación por offset en orden de creación.
func (r *scopedRepository[T, PT]) List(ctx context.Context, accountID int64, p repository.ListParams) ([]*T, error) {
	if p.Page < 1 || p.Limit < 1 {
		return nil, fmt.Errorf("list %s: page y limit deben ser >= 1: %w", r.name, domain.ErrValidation)
	}
	if p.Limit > repository.MaxPageSize {
		p.Limit = repository.MaxPageSize
	}
	exprs, err := r.filterExprs("list", p.Filters)
	if err != nil {
		return nil, err
	}
	if !p.IncludeInactive {
		exprs = append(exprs, activeOnly())
	}
	scope, err := r.scope(accountID, exprs...)
	if err != nil {
		return nil, err
	}
	var out []*T
	err = r.db.WithContext(ctx).Model(new(T)).Scopes(scope).
		Order(orderByID).Offset(p.Offset()).Limit(p.Limit).
		Find(&out).Error
	if err != nil {
		return nil, wrapErr("list "+r.name, err)
	}
	return out, nil
}

// Count filas activas que cumplen los filtros.
func (r *scopedRepository[T, PT]) Count(ctx context.Context, accountID int64, filters map[string]any) (int64, error) {
	exprs, err := r.filterExprs("count", filters)
	if err != nil {
		return 0, err
	}
	scope, err := r.scope(accountID, append(exprs, activeOnly())...)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&n).Error; err != nil {
		return 0, wrapErr("count "+r.name, err)
	}
	return n, nil
}
