package usecase_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// newListings sin portal ni LLM configurados.
func newListings(f fixture) *usecase.ListingUseCase {
	return usecase.NewListingUseCase(f.env.Repos.Listings, nil, nil, f.sessions, zerolog.Nop())
}

func listingsWith(f fixture, portal *mockPortal, llm *mockLLM) *usecase.ListingUseCase {
	if portal == nil {
		portal = &mockPortal{}
	}
	if llm == nil {
		llm = &mockLLM{}
	}
	return usecase.NewListingUseCase(f.env.Repos.Listings, portal, llm, f.sessions, zerolog.Nop())
}

// ── Create / Update / Search ──

func TestListingCreate_AsignaAgenteActual(t *testing.T) {
	f := setup(t)
	uc := newListings(f)
	base := f.env.Listing(t, f.tn)

	l, err := uc.Create(f.ctx, &entity.Listing{
		PropertyID:  base.PropertyID,
		ListingType: entity.ListingTypeRent,
		Status:      entity.ListingStatusForRent,
		Price:       decimal.NewFromInt(950),
	})
	require.NoError(t, err)
	assert.Equal(t, f.tn.Agent.ID, l.AgentID)

	_, err = uc.Create(f.ctx, &entity.Listing{PropertyID: base.PropertyID, Price: decimal.NewFromInt(-1)})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestListingUpdate_EstadoInvalido(t *testing.T) {
	f := setup(t)
	uc := newListings(f)
	l := f.env.Listing(t, f.tn)

	bad := "Liquidado"
	_, err := uc.Update(f.ctx, l.ID, dto.ListingPatch{Status: &bad})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	price := decimal.NewFromInt(239000)
	updated, err := uc.Update(f.ctx, l.ID, dto.ListingPatch{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
}

func TestListingSearch_PaginaYFiltra(t *testing.T) {
	f := setup(t)
	uc := newListings(f)
	for i := 0; i < 3; i++ {
		f.env.Listing(t, f.tn)
	}

	page, err := uc.Search(f.ctx, dto.ListingFilter{PageRequest: dto.PageRequest{Page: 1, Limit: 2}, Status: entity.ListingStatusForSale})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	items, ok := page.Items.([]*entity.Listing)
	require.True(t, ok)
	assert.Len(t, items, 2)

	page, err = uc.Search(f.ctx, dto.ListingFilter{Status: entity.ListingStatusForRent})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestListingDelete_DosVecesNoExiste(t *testing.T) {
	f := setup(t)
	uc := newListings(f)
	l := f.env.Listing(t, f.tn)

	require.NoError(t, uc.Delete(f.ctx, l.ID))
	assert.ErrorIs(t, uc.Delete(f.ctx, l.ID), domain.ErrNotFound)
	_, err := uc.Get(f.ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Publish ──

func TestListingPublish_GuardaReferencia(t *testing.T) {
	f := setup(t)
	portal := &mockPortal{}
	uc := listingsWith(f, portal, nil)
	l := f.env.Listing(t, f.tn)

	portal.On("Publish", mock.Anything, mock.MatchedBy(func(d *entity.ListingWithDetails) bool {
		return d.Listing.ID == l.ID && d.Property.City == "Madrid"
	})).Return(&dto.PortalPublishResult{
		Success:  true,
		Payload:  map[string]any{"ExternalId": "1"},
		Response: map[string]any{"id": float64(987654)},
	}, nil)

	res, err := uc.Publish(f.ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)

	got, err := uc.Get(f.ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "987654", got.PortalReference)
	portal.AssertExpectations(t)
}

func TestListingPublish_RechazoNoEsError(t *testing.T) {
	f := setup(t)
	portal := &mockPortal{}
	uc := listingsWith(f, portal, nil)
	l := f.env.Listing(t, f.tn)

	portal.On("Publish", mock.Anything, mock.Anything).
		Return(&dto.PortalPublishResult{Success: false, Error: "HTTP 422"}, nil)

	res, err := uc.Publish(f.ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "HTTP 422", res.Error)

	got, err := uc.Get(f.ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PortalReference)
}

func TestListingPublish_SinPortal(t *testing.T) {
	f := setup(t)
	l := f.env.Listing(t, f.tn)
	_, err := newListings(f).Publish(f.ctx, l.ID)
	assert.Equal(t, domain.KindTransient, domain.KindOf(err))
}

// ── DraftDescription ──

func TestListingDraftDescription(t *testing.T) {
	f := setup(t)
	llm := &mockLLM{}
	uc := listingsWith(f, nil, llm)
	l := f.env.Listing(t, f.tn)

	llm.On("DraftListingDescription", mock.Anything, mock.MatchedBy(func(in dto.ListingDescriptionInput) bool {
		return in.City == "Madrid" && in.Bedrooms == 2 && in.ListingType == entity.ListingTypeSale
	})).Return(&dto.ListingDescriptionDTO{Title: "Piso luminoso en el centro", Description: "Amplio piso..."}, nil)

	out, err := uc.DraftDescription(f.ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Piso luminoso en el centro", out.Title)
	llm.AssertExpectations(t)
}

func TestListingDraftDescription_FalloDelModelo(t *testing.T) {
	f := setup(t)
	llm := &mockLLM{}
	uc := listingsWith(f, nil, llm)
	l := f.env.Listing(t, f.tn)

	llm.On("DraftListingDescription", mock.Anything, mock.Anything).Return(nil, errors.New("AI: Anthropic HTTP 529"))
	_, err := uc.DraftDescription(f.ctx, l.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "529")
}
