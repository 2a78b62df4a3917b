package usecase_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

func newLookup(f fixture) (*usecase.LookupUseCase, *mockCatastro, *mockGeocoder) {
	cat, geo := &mockCatastro{}, &mockGeocoder{}
	return usecase.NewLookupUseCase(cat, geo, f.env.Repos.Locations, f.sessions, zerolog.Nop()), cat, geo
}

var sampleCadastral = &dto.CadastralData{
	CadastralReference: "9872023VH5797S0001WX",
	Street:             "Calle Alcalá 48",
	PostalCode:         "28014",
	City:               "Madrid",
	Province:           "Madrid",
	SquareMeter:        94,
	YearBuilt:          1925,
	PropertyType:       entity.PropertyTypePiso,
	Usage:              "Residencial",
}

var sampleGeocode = &dto.GeocodeResult{
	Latitude:     40.4189,
	Longitude:    -3.6949,
	Neighborhood: "Cortes",
	City:         "Madrid",
	Province:     "Comunidad de Madrid",
	PostalCode:   "28014",
}

func TestCadastral(t *testing.T) {
	f := setup(t)
	uc, cat, _ := newLookup(f)

	cat.On("LookupByReference", mock.Anything, "9872023VH5797S0001WX").Return(sampleCadastral, nil)
	cat.On("LookupByReference", mock.Anything, "0000000XX0000X0000XX").Return(nil, nil)

	got, err := uc.Cadastral(f.ctx, "9872023VH5797S0001WX")
	require.NoError(t, err)
	assert.Equal(t, 94, got.SquareMeter)

	_, err = uc.Cadastral(f.ctx, "0000000XX0000X0000XX")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Cadastral(f.ctx, " ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestGeocode_RegistraUbicacion(t *testing.T) {
	f := setup(t)
	uc, _, geo := newLookup(f)
	geo.On("Geocode", mock.Anything, "Calle Alcalá 48, Madrid").Return(sampleGeocode, nil)
	geo.On("Geocode", mock.Anything, "Rue de Rivoli, Paris").Return(nil, nil)

	res, err := uc.Geocode(f.ctx, "Calle Alcalá 48, Madrid")
	require.NoError(t, err)
	assert.InDelta(t, 40.4189, res.Latitude, 1e-6)

	var n int64
	require.NoError(t, f.env.DB.Model(&entity.Location{}).Where("neighborhood = ?", "Cortes").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = uc.Geocode(f.ctx, "Rue de Rivoli, Paris")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── EnrichProperty ──

func TestEnrichProperty_AmbasFuentes(t *testing.T) {
	f := setup(t)
	uc, cat, geo := newLookup(f)
	cat.On("LookupByReference", mock.Anything, "9872023VH5797S0001WX").Return(sampleCadastral, nil)
	geo.On("Geocode", mock.Anything, "Calle Alcalá 48, Madrid").Return(sampleGeocode, nil)

	out, err := uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{
		CadastralReference: " 9872023vh5797s0001wx",
		Address:            "Calle Alcalá 48, Madrid",
	})
	require.NoError(t, err)
	p := out.Property
	assert.Equal(t, "9872023VH5797S0001WX", p.CadastralReference)
	assert.Equal(t, 94, p.SquareMeter)
	assert.Equal(t, 1925, p.YearBuilt)
	assert.Equal(t, "Madrid", p.Province, "catastro manda sobre la geocodificación")
	assert.Equal(t, "Cortes", p.Neighborhood)
	require.NotNil(t, p.Latitude)
	assert.InDelta(t, 40.4189, *p.Latitude, 1e-6)
	require.NotNil(t, out.Location)
	require.NotNil(t, p.LocationID)
	assert.Equal(t, out.Location.ID, *p.LocationID)
}

func TestEnrichProperty_CatastroCaidoUsaGeocodificacion(t *testing.T) {
	f := setup(t)
	uc, cat, geo := newLookup(f)
	cat.On("LookupByReference", mock.Anything, mock.Anything).Return(nil, errors.New("catastro: HTTP 503"))
	geo.On("Geocode", mock.Anything, "Calle Alcalá 48, Madrid").Return(sampleGeocode, nil)

	out, err := uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{
		CadastralReference: "9872023VH5797S0001WX",
		Address:            "Calle Alcalá 48, Madrid",
	})
	require.NoError(t, err)
	assert.Nil(t, out.Cadastral)
	assert.Equal(t, "Madrid", out.Property.City)
	assert.Equal(t, "28014", out.Property.PostalCode)
}

func TestEnrichProperty_SoloReferenciaGeocodificaLaDireccionCatastral(t *testing.T) {
	f := setup(t)
	uc, cat, geo := newLookup(f)
	cat.On("LookupByReference", mock.Anything, "9872023VH5797S0001WX").Return(sampleCadastral, nil)
	geo.On("Geocode", mock.Anything, "Calle Alcalá 48, 28014, Madrid, Madrid").Return(sampleGeocode, nil).Once()

	out, err := uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{CadastralReference: "9872023VH5797S0001WX"})
	require.NoError(t, err)
	require.NotNil(t, out.Geocode)
	geo.AssertExpectations(t)
}

func TestEnrichProperty_FallanAmbas(t *testing.T) {
	f := setup(t)
	uc, cat, geo := newLookup(f)
	boom := errors.New("catastro: HTTP 500")
	cat.On("LookupByReference", mock.Anything, mock.Anything).Return(nil, boom)
	geo.On("Geocode", mock.Anything, mock.Anything).Return(nil, errors.New("nominatim: timeout"))

	_, err := uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{CadastralReference: "X", Address: "Y"})
	assert.ErrorIs(t, err, boom)

	_, err = uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestEnrichProperty_SinResultados(t *testing.T) {
	f := setup(t)
	uc, cat, geo := newLookup(f)
	cat.On("LookupByReference", mock.Anything, mock.Anything).Return(nil, nil)
	geo.On("Geocode", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := uc.EnrichProperty(f.ctx, dto.EnrichPropertyRequest{CadastralReference: "X", Address: "Y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
