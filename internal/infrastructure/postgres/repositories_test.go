package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/repository"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres"
)

// ── Contactos ──

func TestContacts_BusquedaSinAcentos(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	want := createContact(t, repos, a, "José", "Muñoz")
	createContact(t, repos, a, "Pedro", "Gil")
	createContact(t, repos, b, "José", "Muñoz")

	got, err := repos.Contacts.Search(ctx, a.id(), "jose munoz", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)

	_, err = repos.Contacts.Update(ctx, a.id(), want.ID, map[string]any{"last_name": "Álvarez"})
	require.NoError(t, err)
	got, err = repos.Contacts.Search(ctx, a.id(), "alvarez", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
}

// ── Imágenes (aisladas a través de properties) ──

func TestPropertyImages_CuentaDistintaEsMismatch(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	p := createProperty(t, repos, a, "Piso")

	_, err := repos.PropertyImages.Create(ctx, b.id(), &entity.PropertyImage{PropertyID: p.ID, URL: "https://img/1.jpg"})
	assert.ErrorIs(t, err, domain.ErrAccountMismatch)

	_, err = repos.PropertyImages.Create(ctx, a.id(), &entity.PropertyImage{PropertyID: 9999, URL: "https://img/1.jpg"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyImages_OrdenYReordenacion(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	p := createProperty(t, repos, a, "Piso")

	var ids []int64
	for i, u := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		img, err := repos.PropertyImages.Create(ctx, a.id(), &entity.PropertyImage{PropertyID: p.ID, URL: u, SortOrder: i})
		require.NoError(t, err)
		ids = append(ids, img.ID)
	}

	require.NoError(t, repos.PropertyImages.Reorder(ctx, a.id(), p.ID, []int64{ids[2], ids[0], ids[1]}))
	got, err := repos.PropertyImages.ListByProperty(ctx, a.id(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{ids[2], ids[0], ids[1]}, []int64{got[0].ID, got[1].ID, got[2].ID})

	other, err := repos.PropertyImages.ListByProperty(ctx, b.id(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
	_, err = repos.PropertyImages.GetByID(ctx, b.id(), ids[0])
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repos.PropertyImages.Reorder(ctx, b.id(), p.ID, ids)
	assert.ErrorIs(t, err, domain.ErrAccountMismatch)
}

// ── Anuncios con detalles ──

func TestListings_ConDetalles(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	p := createProperty(t, repos, a, "Ático con terraza")
	_, err := repos.PropertyImages.Create(ctx, a.id(), &entity.PropertyImage{PropertyID: p.ID, URL: "https://img/1.jpg"})
	require.NoError(t, err)
	l := createListing(t, repos, a, p.ID)

	got, err := repos.Listings.GetWithDetails(ctx, a.id(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ático con terraza", got.Property.Title)
	assert.Len(t, got.Images, 1)
	assert.Equal(t, "Lucía García", got.AgentName)

	page, err := repos.Listings.ListWithDetails(ctx, a.id(), repository.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, l.ID, page[0].Listing.ID)
}

func TestListings_EstadoInvalido(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	p := createProperty(t, repos, a, "Piso")
	l := createListing(t, repos, a, p.ID)

	_, err := repos.Listings.Update(ctx, a.id(), l.ID, map[string]any{"status": "Reservado"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := repos.Listings.Update(ctx, a.id(), l.ID, map[string]any{"status": entity.ListingStatusSold})
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusSold, got.Status)
}

// ── Leads ──

func TestLeads_FindBuyerLead(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	c := createContact(t, repos, a, "Rosa", "Vidal")
	p := createProperty(t, repos, a, "Piso")
	l := createListing(t, repos, a, p.ID)

	_, err := repos.Leads.FindBuyerLead(ctx, a.id(), c.ID, &l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := repos.Leads.Create(ctx, a.id(), &entity.ListingContact{ContactID: c.ID, Status: entity.LeadStatusCitaPendiente})
	require.NoError(t, err)
	second, err := repos.Leads.Create(ctx, a.id(), &entity.ListingContact{ContactID: c.ID, ListingID: &l.ID})
	require.NoError(t, err)
	_, err = repos.Leads.Create(ctx, a.id(), &entity.ListingContact{ContactID: c.ID, ContactType: entity.ContactTypeOwner})
	require.NoError(t, err)

	got, err := repos.Leads.FindBuyerLead(ctx, a.id(), c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "sin anuncio devuelve el primero por id")

	got, err = repos.Leads.FindBuyerLead(ctx, a.id(), c.ID, &l.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = repos.Leads.FindBuyerLead(ctx, b.id(), c.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repos.Leads.Create(ctx, b.id(), &entity.ListingContact{ContactID: c.ID})
	assert.ErrorIs(t, err, domain.ErrAccountMismatch)
}

func TestLeads_LockContact(t *testing.T) {
	db := openTestDB(t)
	repos := postgres.NewRepos(db)
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	c := createContact(t, repos, a, "Rosa", "Vidal")

	err := postgres.NewTxRunner(db).Run(context.Background(), func(tx repository.Repos) error {
		return tx.Leads.LockContact(context.Background(), a.id(), c.ID)
	})
	require.NoError(t, err)

	err = repos.Leads.LockContact(context.Background(), b.id(), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Comentarios ──

func TestComments_HilosDeUnNivel(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	p := createProperty(t, repos, a, "Piso")
	l := createListing(t, repos, a, p.ID)

	root, err := repos.Comments.Create(ctx, a.id(), &entity.Comment{
		EntityLink: entity.EntityLink{ListingID: &l.ID}, UserID: a.Agent.ID, Content: "Llamar al propietario",
	})
	require.NoError(t, err)
	r1, err := repos.Comments.Create(ctx, a.id(), &entity.Comment{UserID: a.Agent.ID, ParentID: &root.ID, Content: "Hecho"})
	require.NoError(t, err)
	r2, err := repos.Comments.Create(ctx, a.id(), &entity.Comment{UserID: a.Agent.ID, ParentID: &root.ID, Content: "Baja precio"})
	require.NoError(t, err)
	assert.Equal(t, &l.ID, r1.ListingID, "la respuesta hereda el vínculo del padre")

	_, err = repos.Comments.Create(ctx, a.id(), &entity.Comment{UserID: a.Agent.ID, ParentID: &r1.ID, Content: "No"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = repos.Comments.Create(ctx, b.id(), &entity.Comment{UserID: b.Agent.ID, ParentID: &root.ID, Content: "Intruso"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	top, err := repos.Comments.ListTopLevel(ctx, a.id(), entity.LinkListing, l.ID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, root.ID, top[0].ID)

	replies, err := repos.Comments.ListReplies(ctx, a.id(), []int64{root.ID})
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, r1.ID, replies[0].ID)
	assert.Equal(t, r2.ID, replies[1].ID)
}

// ── Carteles ──

func cartelSettings() datatypes.JSON {
	return datatypes.JSON(`{"version":1,"template_style":"modern","orientation":"vertical","listing_type":"Sale","primary_color":"#112233","show_price":true,"show_icons":true,"show_qr":false,"show_reference":true,"show_phone":true,"show_website":true}`)
}

func TestCarteles_DefaultUnico(t *testing.T) {
	db := openTestDB(t)
	repos := postgres.NewRepos(db)
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")

	_, err := repos.Carteles.GetDefault(ctx, a.id())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c1, err := repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Escaparate", IsDefault: true, Settings: cartelSettings()})
	require.NoError(t, err)
	c2, err := repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Alquiler", Settings: cartelSettings()})
	require.NoError(t, err)

	err = postgres.NewTxRunner(db).Run(ctx, func(tx repository.Repos) error {
		if err := tx.Carteles.ClearDefault(ctx, a.id()); err != nil {
			return err
		}
		_, err := tx.Carteles.Update(ctx, a.id(), c2.ID, map[string]any{"is_default": true})
		return err
	})
	require.NoError(t, err)

	def, err := repos.Carteles.GetDefault(ctx, a.id())
	require.NoError(t, err)
	assert.Equal(t, c2.ID, def.ID)
	n, err := repos.Carteles.Count(ctx, a.id(), map[string]any{"is_default": true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_ = c1
}

func TestCarteles_TransaccionRevierte(t *testing.T) {
	db := openTestDB(t)
	repos := postgres.NewRepos(db)
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	c1, err := repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Escaparate", IsDefault: true, Settings: cartelSettings()})
	require.NoError(t, err)

	boom := errors.New("fallo a mitad")
	err = postgres.NewTxRunner(db).Run(ctx, func(tx repository.Repos) error {
		if err := tx.Carteles.ClearDefault(ctx, a.id()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	def, err := repos.Carteles.GetDefault(ctx, a.id())
	require.NoError(t, err)
	assert.Equal(t, c1.ID, def.ID)
}

func TestCarteles_IndiceImpideDosPredeterminadas(t *testing.T) {
	db := openTestDB(t)
	repos := postgres.NewRepos(db)
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")

	c1, err := repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Escaparate", IsDefault: true, Settings: cartelSettings()})
	require.NoError(t, err)

	_, err = repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Alquiler", IsDefault: true, Settings: cartelSettings()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	c2, err := repos.Carteles.Create(ctx, a.id(), &entity.CartelConfiguration{Name: "Alquiler", Settings: cartelSettings()})
	require.NoError(t, err)
	_, err = repos.Carteles.Update(ctx, a.id(), c2.ID, map[string]any{"is_default": true})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = repos.Carteles.Create(ctx, b.id(), &entity.CartelConfiguration{Name: "Escaparate", IsDefault: true, Settings: cartelSettings()})
	require.NoError(t, err, "cada cuenta tiene su propia predeterminada")

	ok, err := repos.Carteles.SoftDelete(ctx, a.id(), c1.ID)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = repos.Carteles.Update(ctx, a.id(), c2.ID, map[string]any{"is_default": true})
	require.NoError(t, err, "una predeterminada dada de baja no bloquea")

	require.NoError(t, postgres.Migrate(ctx, db), "la migración es idempotente")
}

func TestCarteles_SettingsInvalidos(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	a := newTenant(t, repos, "alfa")
	_, err := repos.Carteles.Create(context.Background(), a.id(), &entity.CartelConfiguration{
		Name: "Roto", Settings: datatypes.JSON(`{"version":1,"template_style":"neon","orientation":"vertical"}`),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Web ──

func TestWebsite_UpsertPorSeccion(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")

	_, err := repos.Website.GetByAccount(ctx, a.id())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repos.Website.UpsertSection(ctx, a.id(), entity.SectionHero, []byte(`{"title":"Hola"}`)))
	require.NoError(t, repos.Website.UpsertSection(ctx, a.id(), entity.SectionFooter, []byte(`{"companyName":"Alfa"}`)))
	require.NoError(t, repos.Website.UpsertSection(ctx, a.id(), entity.SectionHero, []byte(`{"title":"Bienvenido"}`)))

	cfg, err := repos.Website.GetByAccount(ctx, a.id())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Bienvenido"}`, string(cfg.HeroProps))
	assert.JSONEq(t, `{"companyName":"Alfa"}`, string(cfg.FooterProps))

	_, err = repos.Website.GetByAccount(ctx, b.id())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repos.Website.UpsertSection(ctx, a.id(), entity.WebsiteSection("blog"), []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Ubicaciones ──

func TestLocations_FindOrCreateIdempotente(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()

	first, err := repos.Locations.FindOrCreate(ctx, &entity.Location{Neighborhood: "Chamberí", City: "Madrid", Province: "Madrid"})
	require.NoError(t, err)
	again, err := repos.Locations.FindOrCreate(ctx, &entity.Location{Neighborhood: "chamberi", City: " MADRID ", Province: "madrid"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Chamberí", again.Neighborhood)

	other, err := repos.Locations.FindOrCreate(ctx, &entity.Location{Neighborhood: "Ruzafa", City: "Valencia", Province: "Valencia"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	found, err := repos.Locations.Search(ctx, "chamberí", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = repos.Locations.FindOrCreate(ctx, &entity.Location{Neighborhood: "X"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Usuarios y roles ──

func TestUsers_EmailDuplicadoYRol(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")

	_, err := repos.Users.Create(ctx, a.id(), &entity.User{Email: "AGENTE@alfa.es", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = repos.Users.GetByEmail(ctx, "nadie@alfa.es")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	admin, err := repos.Roles.GetByCode(ctx, entity.RoleAccountAdmin)
	require.NoError(t, err)
	agent, err := repos.Roles.GetByCode(ctx, entity.RoleAgent)
	require.NoError(t, err)

	require.NoError(t, repos.UserRoles.Assign(ctx, a.Agent.ID, agent.ID))
	require.NoError(t, repos.UserRoles.Assign(ctx, a.Agent.ID, admin.ID))
	role, err := repos.UserRoles.RoleOf(ctx, a.Agent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAccountAdmin, role.Code)

	roles, err := repos.Roles.EnsureCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(entity.DefaultRoles()))
}

// ── Resumen ──

func TestDashboard_Conteos(t *testing.T) {
	repos := postgres.NewRepos(openTestDB(t))
	ctx := context.Background()
	a := newTenant(t, repos, "alfa")
	b := newTenant(t, repos, "beta")
	c := createContact(t, repos, a, "Rosa", "Vidal")
	p := createProperty(t, repos, a, "Piso")
	createListing(t, repos, a, p.ID)
	createListing(t, repos, b, createProperty(t, repos, b, "Otro").ID)
	_, err := repos.Leads.Create(ctx, a.id(), &entity.ListingContact{ContactID: c.ID, Status: entity.LeadStatusOfertaPendiente})
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = repos.Appointments.Create(ctx, a.id(), &entity.Appointment{
		UserID: a.Agent.ID, ContactID: c.ID, StartsAt: now, EndsAt: now.Add(time.Hour), Type: entity.AppointmentTypeVisit,
	})
	require.NoError(t, err)

	listings, err := repos.Dashboard.CountListingsByStatus(ctx, a.id())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{entity.ListingStatusForSale: 1}, listings)

	leads, err := repos.Dashboard.CountLeadsByStatus(ctx, a.id())
	require.NoError(t, err)
	assert.Equal(t, int64(1), leads[entity.LeadStatusOfertaPendiente])

	n, err := repos.Dashboard.CountAppointmentsBetween(ctx, a.id(), now.Add(-time.Minute), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repos.Dashboard.CountListingsByStatus(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
