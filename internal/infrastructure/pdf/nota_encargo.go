// Package pdf genera la Nota de Encargo (hoja de encargo de intermediación inmobiliaria).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Agencia + CIF       │  N° Documento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AGENCIA: Dirección / Tel / Email / Agente                  │
//	│  CLIENTE: Nombre + NIF + contacto                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INMUEBLE: Dirección | Ref. catastral | Tipo | m²           │
//	│  OPERACIÓN: Venta/Alquiler | Precio | Exclusiva             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HONORARIOS + DURACIÓN                                      │
//	│  OBSERVACIONES                                              │
//	│  FIRMAS: Cliente │ Agencia                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
)

var _ ports.NotaEncargoRenderer = (*NotaEncargoGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// NotaEncargoGenerator implementa ports.NotaEncargoRenderer usando Maroto v2.
type NotaEncargoGenerator struct{}

// NewNotaEncargoGenerator construye el generador.
func NewNotaEncargoGenerator() *NotaEncargoGenerator { return &NotaEncargoGenerator{} }

// Render genera el PDF y devuelve sus bytes. Respeta la cancelación de ctx.
func (g *NotaEncargoGenerator) Render(ctx context.Context, data *dto.NotaEncargoData) ([]byte, error) {
	type result struct {
		b   []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := g.build(data)
		done <- result{b, err}
	}()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("pdf: %w", ctx.Err())
	case r := <-done:
		return r.b, r.err
	}
}

func (g *NotaEncargoGenerator) build(data *dto.NotaEncargoData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Nota de Encargo "+data.DocumentNumber, true).
		WithAuthor(data.Agency.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(agencyRow(data.Agency))
	m.AddRows(clientRow(data.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(propertyRows(data.Property)...)
	m.AddRows(operationRow(data.Operation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(feeRow(data.Commission, data.Duration))
	if strings.TrimSpace(data.Observations) != "" {
		m.AddRows(observationsRow(data.Observations))
	}
	m.AddRows(row.New(20))
	m.AddRows(signatureRow(data))
	m.AddRows(legalRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(d *dto.NotaEncargoData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(d.Agency.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CIF: "+nonEmpty(d.Agency.CIF, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("NOTA DE ENCARGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+d.DocumentNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+nonEmpty(d.Date, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func agencyRow(a dto.NotaEncargoAgency) core.Row {
	details := fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
		nonEmpty(a.Address, "—"), nonEmpty(a.Phone, "—"), nonEmpty(a.Email, "—"))
	agent := "Agente: " + nonEmpty(a.AgentName, "—")
	if a.Registration != "" {
		agent += "   |   Registro: " + a.Registration
	}
	return row.New(18).Add(
		col.New(12).Add(
			section("LA AGENCIA"),
			text.New(details, props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(agent, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func clientRow(c dto.NotaEncargoClient) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			section("EL CLIENTE (PROPIETARIO)"),
			text.New(c.FullName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIF: %s   |   Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(c.NIF, "—"), nonEmpty(c.Address, "—"),
				nonEmpty(c.Phone, "—"), nonEmpty(c.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func propertyRows(p dto.NotaEncargoProperty) []core.Row {
	place := p.Address
	if p.City != "" {
		place += ", " + p.City
	}
	if p.Province != "" && p.Province != p.City {
		place += " (" + p.Province + ")"
	}
	surface := "—"
	if p.SquareMeter > 0 {
		surface = fmt.Sprintf("%d m²", p.SquareMeter)
	}
	rows := []core.Row{
		row.New(13).Add(col.New(12).Add(
			section("EL INMUEBLE"),
			text.New(place, props.Text{Style: fontstyle.Bold, Size: 9, Top: 6}),
		)),
		row.New(6).Add(
			field(4, "Ref. catastral", nonEmpty(p.CadastralReference, "—")),
			field(4, "Tipo", nonEmpty(p.PropertyType, "—")),
			field(4, "Superficie", surface),
		),
	}
	if p.Registry != "" {
		rows = append(rows, row.New(6).Add(field(12, "Finca registral", p.Registry)))
	}
	return rows
}

func operationRow(o dto.NotaEncargoOperation) core.Row {
	kind := "Venta"
	priceLabel := "Precio de venta"
	if o.Type == "Rent" {
		kind = "Alquiler"
		priceLabel = "Renta mensual"
	}
	exclusive := "No"
	if o.Exclusive {
		exclusive = "Sí"
	}
	return row.New(16).Add(
		col.New(12).Add(
			section("LA OPERACIÓN"),
			text.New(fmt.Sprintf("Tipo: %s   |   %s: %s   |   Exclusiva: %s",
				kind, priceLabel, formatEuros(o.Price), exclusive,
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

func feeRow(f dto.NotaEncargoFee, d dto.NotaEncargoDuration) core.Row {
	basis := formatEuros(f.FixedAmount) + " (importe fijo)"
	if !f.FixedAmount.IsPositive() {
		basis = f.Percent.StringFixed(2) + " % sobre el precio"
	}
	vat := "IVA no incluido"
	if f.IncludesVAT {
		vat = "IVA incluido"
	}
	duration := "—"
	if d.Months > 0 {
		duration = fmt.Sprintf("%d meses", d.Months)
		if d.StartDate != "" {
			duration += " desde " + d.StartDate
		}
	}
	return row.New(24).Add(
		col.New(7).Add(
			section("HONORARIOS"),
			text.New(basis, props.Text{Size: 9, Top: 7}),
			text.New(vat, props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TOTAL HONORARIOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(formatEuros(f.Amount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 7,
			}),
			text.New("Duración: "+duration, props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

func observationsRow(obs string) core.Row {
	return row.New(20).Add(col.New(12).Add(
		section("OBSERVACIONES"),
		text.New(obs, props.Text{Size: 8, Top: 7}),
	))
}

func signatureRow(d *dto.NotaEncargoData) core.Row {
	sign := func(title, name string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center}),
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 6}),
			text.New(name, props.Text{Size: 8, Align: align.Center, Top: 11, Color: colorGray}),
		)
	}
	return row.New(18).Add(
		sign("EL CLIENTE", d.Client.FullName),
		sign("LA AGENCIA", nonEmpty(d.Agency.AgentName, d.Agency.Name)),
	)
}

func legalRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"El cliente encarga a la agencia la intermediación en la operación descrita en las "+
				"condiciones indicadas. Los honorarios se devengarán a la firma del contrato de "+
				"compraventa o arrendamiento con un cliente presentado por la agencia.",
			props.Text{Size: 6.5, Color: colorGray, Top: 4},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func section(label string) core.Component {
	return text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
}

func field(size int, label, value string) core.Col {
	return col.New(size).Add(text.New(label+": "+value, props.Text{Size: 8, Top: 1}))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuros importe con puntos de miles y coma decimal. Ej: 250000.5 → "250.000,50 €".
func formatEuros(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := formatThousands(intPart) + "," + frac + " €"
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
