package repository

import "context"

// MaxPageSize límite superior de elementos por página.
const MaxPageSize = 100

// ListParams paginación por offset y filtros de igualdad combinados con AND.
// Un filtro con valor slice se traduce a IN; con valor nil, a IS NULL.
type ListParams struct {
	Page            int
	Limit           int
	Filters         map[string]any
	IncludeInactive bool
}

// Offset devuelve (page-1)*limit.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Scoped operaciones comunes a toda entidad aislada por cuenta.
// Todas fallan con domain.ErrUnauthenticated si accountID no es válido, antes de tocar la base de datos.
type Scoped[T any] interface {
	// Create inserta con is_active=true y devuelve la fila releída por su id.
	Create(ctx context.Context, accountID int64, e *T) (*T, error)
	// GetByID solo filas activas; domain.ErrNotFound si no existe o es de otra cuenta.
	GetByID(ctx context.Context, accountID, id int64) (*T, error)
	// GetByIDIncludingInactive incluye filas dadas de baja lógica.
	GetByIDIncludingInactive(ctx context.Context, accountID, id int64) (*T, error)
	// ListBy filas activas cuya columna FK es igual a value.
	ListBy(ctx context.Context, accountID int64, column string, value any) ([]*T, error)
	// Update aplica un conjunto parcial de columnas y relee la fila.
	Update(ctx context.Context, accountID, id int64, fields map[string]any) (*T, error)
	SoftDelete(ctx context.Context, accountID, id int64) (bool, error)
	HardDelete(ctx context.Context, accountID, id int64) (bool, error)
	List(ctx context.Context, accountID int64, p ListParams) ([]*T, error)
	Count(ctx context.Context, accountID int64, filters map[string]any) (int64, error)
}
