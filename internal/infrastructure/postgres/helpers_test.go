package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// openTestDB base sqlite en memoria con el esquema migrado. Una sola conexión:
// cada conexión nueva a :memory: sería otra base vacía.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db))
	return db
}

// tenant cuenta con un agente, para sembrar datos aislados.
type tenant struct {
	Account *entity.Account
	Agent   *entity.User
}

func newTenant(t *testing.T, repos repository.Repos, slug string) tenant {
	t.Helper()
	ctx := context.Background()
	acc, err := repos.Accounts.Create(ctx, &entity.Account{Name: "Inmobiliaria " + slug, Slug: slug})
	require.NoError(t, err)
	agent, err := repos.Users.Create(ctx, acc.ID, &entity.User{
		Email:        "agente@" + slug + ".es",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Lucía",
		LastName:     "García",
	})
	require.NoError(t, err)
	return tenant{Account: acc, Agent: agent}
}

func (tn tenant) id() int64 { return tn.Account.ID }

func createContact(t *testing.T, repos repository.Repos, tn tenant, first, last string) *entity.Contact {
	t.Helper()
	c, err := repos.Contacts.Create(context.Background(), tn.id(), &entity.Contact{
		FirstName: first,
		LastName:  last,
		Email:     first + "@correo.es",
		Phone:     "600 111 222",
	})
	require.NoError(t, err)
	return c
}

func createProperty(t *testing.T, repos repository.Repos, tn tenant, title string) *entity.Property {
	t.Helper()
	p, err := repos.Properties.Create(context.Background(), tn.id(), &entity.Property{
		Title:        title,
		PropertyType: entity.PropertyTypePiso,
		Street:       "Calle Mayor 1",
		City:         "Madrid",
		Province:     "Madrid",
		Bedrooms:     3,
	})
	require.NoError(t, err)
	return p
}

func createListing(t *testing.T, repos repository.Repos, tn tenant, propertyID int64) *entity.Listing {
	t.Helper()
	l, err := repos.Listings.Create(context.Background(), tn.id(), &entity.Listing{
		PropertyID:  propertyID,
		AgentID:     tn.Agent.ID,
		ListingType: entity.ListingTypeSale,
		Status:      entity.ListingStatusForSale,
		Price:       decimal.NewFromInt(250000),
	})
	require.NoError(t, err)
	return l
}

func int64Ptr(v int64) *int64 { return &v }
