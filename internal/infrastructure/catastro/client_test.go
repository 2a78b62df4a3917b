package catastro_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/catastro"
)

const urbanXML = `<?xml version="1.0" encoding="utf-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <control><cudnp>1</cudnp><cucons>1</cucons><cucul>0</cucul></control>
  <bico>
    <bi>
      <idbi>
        <cn>UR</cn>
        <rc><pc1>9872023</pc1><pc2>VH5797S</pc2><car>0001</car><cc1>W</cc1><cc2>X</cc2></rc>
      </idbi>
      <dt>
        <loine><cp>46</cp><cm>250</cm></loine>
        <np>VALENCIA</np>
        <nm>VALENCIA</nm>
        <locs><lous><lourb>
          <dir><cv>1234</cv><tv>CL</tv><nv>COLON</nv><pnp>12</pnp></dir>
          <loint><es>1</es><pt>02</pt><pu>A</pu></loint>
          <dp>46004</dp><dm>1</dm>
        </lourb></lous></locs>
      </dt>
      <ldt>CL COLON 12 Es:1 Pl:02 Pt:A 46004 VALENCIA (VALENCIA)</ldt>
      <debi><luso>Residencial</luso><sfc>118</sfc><cpt>100,000000</cpt><ant>1962</ant></debi>
    </bi>
  </bico>
</consulta_dnp>`

const errorXML = `<?xml version="1.0" encoding="utf-8"?>
<consulta_dnp xmlns="http://www.catastro.meh.es/">
  <control><cuerr>1</cuerr></control>
  <lerr><err><cod>6</cod><des>LA REFERENCIA CATASTRAL NO ESTA CORRECTAMENTE FORMADA</des></err></lerr>
</consulta_dnp>`

func server(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "9872023VH5797S0001WX", r.URL.Query().Get("RC"))
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

// ── LookupByReference ──

func TestLookupByReference_Urbano(t *testing.T) {
	srv := server(t, http.StatusOK, urbanXML)
	defer srv.Close()

	c := catastro.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	data, err := c.LookupByReference(context.Background(), " 9872023vh5797s0001wx ")
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, "9872023VH5797S0001WX", data.CadastralReference)
	assert.Equal(t, "Calle Colon 12", data.Street)
	assert.Equal(t, "Esc. 1 Pl. 02 Pta. A", data.AddressDetails)
	assert.Equal(t, "46004", data.PostalCode)
	assert.Equal(t, "Valencia", data.City)
	assert.Equal(t, "Valencia", data.Province)
	assert.Equal(t, 118, data.SquareMeter)
	assert.Equal(t, 1962, data.YearBuilt)
	assert.Equal(t, entity.PropertyTypePiso, data.PropertyType)
}

func TestLookupByReference_ErrorDelCatastroEsNil(t *testing.T) {
	srv := server(t, http.StatusOK, errorXML)
	defer srv.Close()

	c := catastro.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	data, err := c.LookupByReference(context.Background(), "9872023VH5797S0001WX")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestLookupByReference_HTTPError(t *testing.T) {
	srv := server(t, http.StatusServiceUnavailable, "")
	defer srv.Close()

	c := catastro.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := c.LookupByReference(context.Background(), "9872023VH5797S0001WX")
	assert.Error(t, err)
}

func TestLookupByReference_XMLInvalido(t *testing.T) {
	srv := server(t, http.StatusOK, "esto no es xml")
	defer srv.Close()

	c := catastro.NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := c.LookupByReference(context.Background(), "9872023VH5797S0001WX")
	assert.Error(t, err)
}

func TestLookupByReference_ReferenciaVacia(t *testing.T) {
	c := catastro.NewClient("http://127.0.0.1:0", time.Second, zerolog.Nop())
	data, err := c.LookupByReference(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, data)
}
