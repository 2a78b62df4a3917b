package postgres

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
)

// accountPredicate construye el predicado de cuenta de una tabla.
type accountPredicate func(accountID int64) clause.Expression

// col columna calificada con la tabla de la sentencia en curso.
func col(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// directAccount <tabla>.account_id = ?
func directAccount(accountID int64) clause.Expression {
	return clause.Eq{Column: col("account_id"), Value: accountID}
}

// viaParent aísla tablas sin account_id a través de su tabla padre:
// <tabla>.<fk> IN (SELECT id FROM <padre> WHERE account_id = ?)
func viaParent(parentTable, fk string) accountPredicate {
	return func(accountID int64) clause.Expression {
		return clause.Expr{
			SQL:  "? IN (SELECT id FROM ? WHERE account_id = ?)",
			Vars: []interface{}{col(fk), clause.Table{Name: parentTable}, accountID},
		}
	}
}

// AccountScope scope GORM <tabla>.account_id = accountID, sin validación.
func AccountScope(accountID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Where{Exprs: []clause.Expression{directAccount(accountID)}})
	}
}

// WithAccountFilter devuelve el predicado de cuenta conjuntado con los predicados extra.
// Falla con domain.ErrUnauthenticated si la cuenta no es válida, antes de ejecutar ninguna consulta.
func WithAccountFilter(accountID int64, extra ...clause.Expression) (func(*gorm.DB) *gorm.DB, error) {
	return withPredicate(directAccount, accountID, extra...)
}

// AccountResolver resuelve la cuenta de la sesión en curso.
type AccountResolver interface {
	CurrentAccountID(ctx context.Context) (int64, error)
}

// ScopeForSession como WithAccountFilter, tomando la cuenta de la sesión del contexto.
func ScopeForSession(ctx context.Context, sessions AccountResolver, extra ...clause.Expression) (func(*gorm.DB) *gorm.DB, error) {
	accountID, err := sessions.CurrentAccountID(ctx)
	if err != nil {
		return nil, err
	}
	return WithAccountFilter(accountID, extra...)
}

func withPredicate(pred accountPredicate, accountID int64, extra ...clause.Expression) (func(*gorm.DB) *gorm.DB, error) {
	if accountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	exprs := make([]clause.Expression, 0, len(extra)+1)
	exprs = append(exprs, pred(accountID))
	exprs = append(exprs, extra...)
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Where{Exprs: exprs})
	}, nil
}

// activeOnly <tabla>.is_active = true
func activeOnly() clause.Expression {
	return clause.Eq{Column: col("is_active"), Value: true}
}

func idEq(id int64) clause.Expression {
	return clause.Eq{Column: col("id"), Value: id}
}

// filterExpr traduce un filtro de igualdad: slice -> IN, nil -> IS NULL.
func filterExpr(column string, value any) clause.Expression {
	if value == nil {
		return clause.Eq{Column: col(column), Value: nil}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		values := make([]interface{}, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return clause.IN{Column: col(column), Values: values}
	}
	return clause.Eq{Column: col(column), Value: value}
}

// ensureOwned comprueba que la fila <table>.id pertenece a la cuenta.
// ErrNotFound si no existe; ErrAccountMismatch si es de otra cuenta.
func ensureOwned(ctx context.Context, db *gorm.DB, table string, id, accountID int64) error {
	var owner struct{ AccountID int64 }
	res := db.WithContext(ctx).Table(table).Select("account_id").Where("id = ?", id).Limit(1).Scan(&owner)
	if res.Error != nil {
		return wrapErr("check "+table, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrNotFound)
	}
	if owner.AccountID != accountID {
		return fmt.Errorf("%s %d: %w", table, id, domain.ErrAccountMismatch)
	}
	return nil
}
