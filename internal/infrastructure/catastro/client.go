// Package catastro consulta datos no protegidos de la Sede Electrónica del Catastro.
package catastro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

var _ ports.CadastralLookup = (*Client)(nil)

// Client cliente del servicio Consulta_DNPRC (OVCCallejero).
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. endpoint es la URL completa de Consulta_DNPRC.
func NewClient(endpoint string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "catastro").Logger(),
	}
}

// LookupByReference devuelve los datos del inmueble o (nil, nil) si el Catastro no lo encuentra.
func (c *Client) LookupByReference(ctx context.Context, ref string) (*dto.CadastralData, error) {
	ref = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), " ", ""))
	if ref == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("Provincia", "")
	q.Set("Municipio", "")
	q.Set("RC", ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("catastro: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catastro: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("catastro: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catastro: HTTP %d", resp.StatusCode)
	}

	data, err := parse(body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		c.log.Debug().Str("ref", ref).Msg("referencia sin datos en el Catastro")
		return nil, nil
	}
	if data.CadastralReference == "" {
		data.CadastralReference = ref
	}
	return data, nil
}

// parse interpreta la respuesta <consulta_dnp>. Con <lerr> o sin <bi> devuelve nil.
func parse(body []byte) (*dto.CadastralData, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("catastro: XML inválido: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("catastro: respuesta vacía")
	}
	if root.FindElement("lerr/err") != nil {
		return nil, nil
	}
	bi := root.FindElement("bico/bi")
	if bi == nil {
		// varias unidades: lista de referencias sin detalle
		return nil, nil
	}

	out := &dto.CadastralData{
		CadastralReference: reference(bi.FindElement("idbi/rc")),
		City:               titleCase(text(bi, "dt/nm")),
		Province:           titleCase(text(bi, "dt/np")),
		SquareMeter:        atoi(text(bi, "debi/sfc")),
		YearBuilt:          atoi(text(bi, "debi/ant")),
		Usage:              text(bi, "debi/luso"),
	}
	out.PropertyType = propertyType(out.Usage)

	if lourb := bi.FindElement("dt/locs/lous/lourb"); lourb != nil {
		out.Street = street(lourb.FindElement("dir"))
		out.PostalCode = text(lourb, "dp")
		out.AddressDetails = interior(lourb.FindElement("loint"))
	} else if lorus := bi.FindElement("dt/locs/lors/lorus"); lorus != nil {
		// rústico: paraje y polígono/parcela
		out.Street = titleCase(text(lorus, "npa"))
		if pol, par := text(lorus, "cpp/cpo"), text(lorus, "cpp/cpa"); pol != "" {
			out.AddressDetails = fmt.Sprintf("Polígono %s Parcela %s", pol, par)
		}
	}
	return out, nil
}

func text(e *etree.Element, path string) string {
	if el := e.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func reference(rc *etree.Element) string {
	if rc == nil {
		return ""
	}
	var b strings.Builder
	for _, tag := range []string{"pc1", "pc2", "car", "cc1", "cc2"} {
		b.WriteString(text(rc, tag))
	}
	return b.String()
}

// street "CL COLON 1" → "Calle Colon 1".
func street(dir *etree.Element) string {
	if dir == nil {
		return ""
	}
	parts := []string{}
	if tv := viaTypes[text(dir, "tv")]; tv != "" {
		parts = append(parts, tv)
	} else if tv := text(dir, "tv"); tv != "" {
		parts = append(parts, tv)
	}
	if nv := titleCase(text(dir, "nv")); nv != "" {
		parts = append(parts, nv)
	}
	if pnp := text(dir, "pnp"); pnp != "" && pnp != "0" {
		parts = append(parts, pnp)
	}
	return strings.Join(parts, " ")
}

// interior escalera, planta y puerta: "Esc. 1 Pl. 02 Pta. A".
func interior(loint *etree.Element) string {
	if loint == nil {
		return ""
	}
	var parts []string
	for _, f := range []struct{ tag, label string }{{"es", "Esc."}, {"pt", "Pl."}, {"pu", "Pta."}} {
		if v := text(loint, f.tag); v != "" {
			parts = append(parts, f.label+" "+v)
		}
	}
	return strings.Join(parts, " ")
}

var viaTypes = map[string]string{
	"CL": "Calle",
	"AV": "Avenida",
	"PZ": "Plaza",
	"PS": "Paseo",
	"CR": "Carretera",
	"CM": "Camino",
	"RD": "Ronda",
	"TR": "Travesía",
	"GL": "Glorieta",
	"UR": "Urbanización",
}

// propertyType uso principal del Catastro al tipo de inmueble del CRM.
func propertyType(usage string) string {
	u := strings.ToLower(usage)
	switch {
	case strings.Contains(u, "residencial"):
		return entity.PropertyTypePiso
	case strings.Contains(u, "comercial"), strings.Contains(u, "oficinas"), strings.Contains(u, "industrial"):
		return entity.PropertyTypeLocal
	case strings.Contains(u, "almac"), strings.Contains(u, "estacionamiento"):
		return entity.PropertyTypeGaraje
	case strings.Contains(u, "suelo"), strings.Contains(u, "agrario"):
		return entity.PropertyTypeSolar
	default:
		return ""
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// titleCase "VALENCIA" → "Valencia", "SANT JOAN D'ALACANT" → "Sant Joan D'alacant".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
