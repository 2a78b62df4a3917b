// Package pgtest base de datos sqlite en memoria con el esquema migrado, para pruebas
// de casos de uso que necesitan repositorios reales.
package pgtest

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

// Env base migrada con sus repositorios y runner de transacciones.
type Env struct {
	DB    *gorm.DB
	Repos repository.Repos
	Tx    *postgres.TxRunner
}

// Open abre una base nueva. Una sola conexión: cada conexión a :memory: sería otra base.
func Open(t testing.TB) *Env {
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
	return &Env{DB: db, Repos: postgres.NewRepos(db), Tx: postgres.NewTxRunner(db)}
}

// Tenant cuenta con un usuario agente.
type Tenant struct {
	Account *entity.Account
	Agent   *entity.User
}

// ID cuenta del tenant.
func (tn Tenant) ID() int64 { return tn.Account.ID }

// Session sesión válida del agente con el rol indicado.
func (tn Tenant) Session(role string) *entity.Session {
	return &entity.Session{
		User: entity.SessionUser{
			ID:        tn.Agent.ID,
			AccountID: tn.Account.ID,
			Email:     tn.Agent.Email,
			FirstName: tn.Agent.FirstName,
			LastName:  tn.Agent.LastName,
			Role:      role,
		},
		Session: entity.SessionInfo{ID: "test-session", ExpiresAt: time.Now().Add(time.Hour)},
	}
}

// NewTenant crea una cuenta y su agente.
func (e *Env) NewTenant(t testing.TB, slug string) Tenant {
	t.Helper()
	ctx := context.Background()
	acc, err := e.Repos.Accounts.Create(ctx, &entity.Account{Name: "Inmobiliaria " + slug, Slug: slug})
	require.NoError(t, err)
	agent, err := e.Repos.Users.Create(ctx, acc.ID, &entity.User{
		Email:        "agente@" + slug + ".es",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Lucía",
		LastName:     "García",
	})
	require.NoError(t, err)
	return Tenant{Account: acc, Agent: agent}
}

// Contact crea un contacto en la cuenta.
func (e *Env) Contact(t testing.TB, tn Tenant, first string) *entity.Contact {
	t.Helper()
	c, err := e.Repos.Contacts.Create(context.Background(), tn.ID(), &entity.Contact{
		FirstName: first,
		LastName:  "Prueba",
		Email:     first + "@correo.es",
	})
	require.NoError(t, err)
	return c
}

// Listing crea inmueble y anuncio en venta.
func (e *Env) Listing(t testing.TB, tn Tenant) *entity.Listing {
	t.Helper()
	ctx := context.Background()
	p, err := e.Repos.Properties.Create(ctx, tn.ID(), &entity.Property{
		Title:        "Piso centro",
		PropertyType: entity.PropertyTypePiso,
		Street:       "Calle Mayor 1",
		City:         "Madrid",
		Province:     "Madrid",
		Bedrooms:     2,
		SquareMeter:  70,
	})
	require.NoError(t, err)
	l, err := e.Repos.Listings.Create(ctx, tn.ID(), &entity.Listing{
		PropertyID:  p.ID,
		AgentID:     tn.Agent.ID,
		ListingType: entity.ListingTypeSale,
		Status:      entity.ListingStatusForSale,
		Price:       decimal.NewFromInt(250000),
	})
	require.NoError(t, err)
	return l
}
