package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/analytics"
	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres/pgtest"
)

func TestGetSummary(t *testing.T) {
	env := pgtest.Open(t)
	tn := env.NewTenant(t, "brisa")
	ctx := context.Background()
	repos := env.Repos

	sale1 := env.Listing(t, tn)
	env.Listing(t, tn)
	sold := env.Listing(t, tn)
	_, err := repos.Listings.Update(ctx, tn.ID(), sold.ID, map[string]any{"status": entity.ListingStatusSold})
	require.NoError(t, err)
	rent := env.Listing(t, tn)
	_, err = repos.Listings.Update(ctx, tn.ID(), rent.ID, map[string]any{
		"status": entity.ListingStatusForRent, "listing_type": entity.ListingTypeRent,
	})
	require.NoError(t, err)

	ana := env.Contact(t, tn, "Ana")
	luis := env.Contact(t, tn, "Luis")
	for _, c := range []*entity.Contact{ana, luis} {
		_, err := repos.Leads.Create(ctx, tn.ID(), &entity.ListingContact{
			ContactID:   c.ID,
			ListingID:   &sale1.ID,
			ContactType: entity.ContactTypeBuyer,
			Status:      entity.LeadStatusCitaPendiente,
			Source:      entity.LeadSourceManual,
		})
		require.NoError(t, err)
	}

	now := time.Now()
	for _, start := range []time.Time{now, now.AddDate(0, 0, 2)} {
		_, err := repos.Appointments.Create(ctx, tn.ID(), &entity.Appointment{
			UserID:    tn.Agent.ID,
			ContactID: ana.ID,
			StartsAt:  start.UTC(),
			EndsAt:    start.Add(time.Hour).UTC(),
			Status:    entity.AppointmentScheduled,
		})
		require.NoError(t, err)
	}

	_, err = repos.Tasks.Create(ctx, tn.ID(), &entity.Task{AssignedTo: tn.Agent.ID, Title: "Preparar nota de encargo"})
	require.NoError(t, err)

	for _, d := range []struct {
		status string
		fee    int64
	}{
		{entity.DealStatusOffer, 6000},
		{entity.DealStatusUnderContract, 4500},
		{entity.DealStatusClosed, 9000},
	} {
		_, err := repos.Deals.Create(ctx, tn.ID(), &entity.Deal{
			ListingID:        sale1.ID,
			Status:           d.status,
			Amount:           decimal.NewFromInt(200000),
			CommissionAmount: decimal.NewFromInt(d.fee),
		})
		require.NoError(t, err)
	}

	uc := analytics.NewDashboardUseCase(repos, auth.NewResolver(nil, zerolog.Nop()))
	sum, err := uc.GetSummary(auth.WithSession(ctx, tn.Session(entity.RoleAgent)))
	require.NoError(t, err)

	assert.EqualValues(t, 2, sum.ListingsByStatus[entity.ListingStatusForSale])
	assert.EqualValues(t, 1, sum.ListingsByStatus[entity.ListingStatusSold])
	assert.EqualValues(t, 3, sum.ActiveListings, "en venta más en alquiler")
	assert.EqualValues(t, 2, sum.LeadsByStatus[string(entity.LeadStatusCitaPendiente)])
	assert.EqualValues(t, 1, sum.TodayAppointments)
	assert.Equal(t, 1, sum.OpenTasks)
	assert.Equal(t, 2, sum.OpenDeals)
	assert.True(t, decimal.NewFromInt(10500).Equal(sum.ExpectedCommission), sum.ExpectedCommission.String())
	assert.Contains(t, sum.DateLabel, " de ")
}

func TestGetSummary_CuentaVaciaYSinSesion(t *testing.T) {
	env := pgtest.Open(t)
	tn := env.NewTenant(t, "calma")
	uc := analytics.NewDashboardUseCase(env.Repos, auth.NewResolver(nil, zerolog.Nop()))

	sum, err := uc.GetSummary(auth.WithSession(context.Background(), tn.Session(entity.RoleAgent)))
	require.NoError(t, err)
	assert.Zero(t, sum.ActiveListings)
	assert.Empty(t, sum.LeadsByStatus)
	assert.True(t, sum.ExpectedCommission.IsZero())

	_, err = uc.GetSummary(context.Background())
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}
