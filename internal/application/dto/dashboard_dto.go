package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	// Anuncios activos por estado ("En Venta", "Vendido", ...)
	ListingsByStatus map[string]int64 `json:"listings_by_status"`
	ActiveListings   int64            `json:"active_listings"`

	// Leads compradores por estado del embudo
	LeadsByStatus map[string]int64 `json:"leads_by_status"`

	TodayAppointments int64 `json:"today_appointments"`
	OpenTasks         int   `json:"open_tasks"`

	// Operaciones en curso (Offer + UnderContract) y honorarios previstos
	OpenDeals          int             `json:"open_deals"`
	ExpectedCommission decimal.Decimal `json:"expected_commission"`

	DateLabel string `json:"date_label"` // ej: "19 de octubre de 2026"
}
