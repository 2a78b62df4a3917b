// Package analytics resumen de actividad de la cuenta para el panel principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
)

// DashboardUseCase genera el resumen del día de la cuenta.
//
// Fuente de datos: DashboardRepository (consultas read-only) más tareas y operaciones abiertas.
type DashboardUseCase struct {
	repos    repository.Repos
	sessions *auth.Resolver
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repos, sessions *auth.Resolver) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, sessions: sessions, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO de la cuenta actual.
//
// Cinco consultas en paralelo:
//  1. anuncios activos por estado
//  2. leads por estado del embudo
//  3. citas de hoy
//  4. tareas abiertas del usuario
//  5. operaciones en curso (honorarios previstos)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	user, err := uc.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	accountID := user.AccountID
	now := uc.now()

	// Hoy: 00:00 – 24:00 en hora local
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)

	type countsResult struct {
		m   map[string]int64
		err error
	}
	type leadsResult struct {
		m   map[entity.LeadStatus]int64
		err error
	}
	type intResult struct {
		n   int64
		err error
	}
	type tasksResult struct {
		tasks []*entity.Task
		err   error
	}
	type dealsResult struct {
		deals []*entity.Deal
		err   error
	}

	listingsCh := make(chan countsResult, 1)
	leadsCh := make(chan leadsResult, 1)
	apptCh := make(chan intResult, 1)
	tasksCh := make(chan tasksResult, 1)
	dealsCh := make(chan dealsResult, 1)

	go func() {
		m, err := uc.repos.Dashboard.CountListingsByStatus(ctx, accountID)
		listingsCh <- countsResult{m, err}
	}()
	go func() {
		m, err := uc.repos.Dashboard.CountLeadsByStatus(ctx, accountID)
		leadsCh <- leadsResult{m, err}
	}()
	go func() {
		n, err := uc.repos.Dashboard.CountAppointmentsBetween(ctx, accountID, todayStart.UTC(), todayEnd.UTC())
		apptCh <- intResult{n, err}
	}()
	go func() {
		t, err := uc.repos.Tasks.ListOpenByAssignee(ctx, accountID, user.ID, nil)
		tasksCh <- tasksResult{t, err}
	}()
	go func() {
		d, err := uc.repos.Deals.ListByStatuses(ctx, accountID, []string{entity.DealStatusOffer, entity.DealStatusUnderContract})
		dealsCh <- dealsResult{d, err}
	}()

	listings := <-listingsCh
	leads := <-leadsCh
	appts := <-apptCh
	tasks := <-tasksCh
	deals := <-dealsCh

	if listings.err != nil {
		return nil, fmt.Errorf("dashboard: anuncios: %w", listings.err)
	}
	if leads.err != nil {
		return nil, fmt.Errorf("dashboard: leads: %w", leads.err)
	}
	if appts.err != nil {
		return nil, fmt.Errorf("dashboard: citas: %w", appts.err)
	}
	if tasks.err != nil {
		return nil, fmt.Errorf("dashboard: tareas: %w", tasks.err)
	}
	if deals.err != nil {
		return nil, fmt.Errorf("dashboard: operaciones: %w", deals.err)
	}

	var active int64
	for status, n := range listings.m {
		switch status {
		case entity.ListingStatusForSale, entity.ListingStatusForRent:
			active += n
		}
	}
	leadsByStatus := make(map[string]int64, len(leads.m))
	for status, n := range leads.m {
		leadsByStatus[string(status)] = n
	}
	expected := decimal.Zero
	for _, d := range deals.deals {
		expected = expected.Add(d.CommissionAmount)
	}

	return &dto.DashboardSummaryDTO{
		ListingsByStatus:   listings.m,
		ActiveListings:     active,
		LeadsByStatus:      leadsByStatus,
		TodayAppointments:  appts.n,
		OpenTasks:          len(tasks.tasks),
		OpenDeals:          len(deals.deals),
		ExpectedCommission: expected.Round(2),
		DateLabel:          dateLabel(now),
	}, nil
}

// dateLabel etiqueta legible del día, ej: "19 de octubre de 2026".
func dateLabel(t time.Time) string {
	months := [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}
