package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el resumen.
type DashboardRepo struct {
	db *gorm.DB
}

// NewDashboardRepository construye el repositorio.
func NewDashboardRepository(db *gorm.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

type statusCount struct {
	Status string
	Total  int64
}

// CountListingsByStatus anuncios activos agrupados por estado.
func (r *DashboardRepo) CountListingsByStatus(ctx context.Context, accountID int64) (map[string]int64, error) {
	if accountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	query := `
		SELECT status, COUNT(*) AS total
		FROM listings
		WHERE account_id = ? AND is_active = ?
		GROUP BY status`
	var rows []statusCount
	if err := r.db.WithContext(ctx).Raw(query, accountID, true).Scan(&rows).Error; err != nil {
		return nil, wrapErr("count listings by status", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// CountLeadsByStatus leads compradores activos por estado; los leads sin estado no cuentan.
func (r *DashboardRepo) CountLeadsByStatus(ctx context.Context, accountID int64) (map[entity.LeadStatus]int64, error) {
	if accountID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	query := `
		SELECT lc.status, COUNT(*) AS total
		FROM listing_contacts lc
		JOIN contacts c ON c.id = lc.contact_id
		WHERE c.account_id = ? AND lc.is_active = ? AND lc.contact_type = ?
		  AND lc.status IS NOT NULL AND lc.status <> ''
		GROUP BY lc.status`
	var rows []statusCount
	err := r.db.WithContext(ctx).Raw(query, accountID, true, entity.ContactTypeBuyer).Scan(&rows).Error
	if err != nil {
		return nil, wrapErr("count leads by status", err)
	}
	out := make(map[entity.LeadStatus]int64, len(rows))
	for _, row := range rows {
		out[entity.LeadStatus(row.Status)] = row.Total
	}
	return out, nil
}

// CountAppointmentsBetween citas activas que empiezan en [from, to).
func (r *DashboardRepo) CountAppointmentsBetween(ctx context.Context, accountID int64, from, to time.Time) (int64, error) {
	if accountID <= 0 {
		return 0, domain.ErrUnauthenticated
	}
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE account_id = ? AND is_active = ? AND starts_at >= ? AND starts_at < ?`
	var total int64
	if err := r.db.WithContext(ctx).Raw(query, accountID, true, from, to).Scan(&total).Error; err != nil {
		return 0, wrapErr("count appointments", err)
	}
	return total, nil
}
