package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/pdf"
)

func sampleNota() *dto.NotaEncargoData {
	return &dto.NotaEncargoData{
		DocumentNumber: "NE-2026-014",
		Date:           "19/10/2026",
		Agency: dto.NotaEncargoAgency{
			Name: "Inmobiliaria Sol", CIF: "B12345674", AgentName: "Marta Ruiz",
		},
		Client: dto.NotaEncargoClient{FullName: "Juan Pérez", NIF: "12345678Z"},
		Property: dto.NotaEncargoProperty{
			Address: "Calle Mayor 1", City: "Madrid", Province: "Madrid", SquareMeter: 90,
		},
		Operation:    dto.NotaEncargoOperation{Type: "Sale", Price: decimal.NewFromInt(250000), Exclusive: true},
		Commission:   dto.NotaEncargoFee{Percent: decimal.NewFromInt(3), Amount: decimal.NewFromInt(7500)},
		Duration:     dto.NotaEncargoDuration{Months: 6, StartDate: "20/10/2026"},
		Observations: "Llaves en la agencia.",
	}
}

// ── Render ──

func TestRender_GeneraPDF(t *testing.T) {
	g := pdf.NewNotaEncargoGenerator()
	out, err := g.Render(context.Background(), sampleNota())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := pdf.NewNotaEncargoGenerator()
	_, err := g.Render(ctx, sampleNota())
	// la generación puede ganar la carrera; si falla, es por la cancelación
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

// ── Formato de importes ──

func TestFormatEuros(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00 €",
		"999.5":     "999,50 €",
		"7500":      "7.500,00 €",
		"250000":    "250.000,00 €",
		"1234567.8": "1.234.567,80 €",
		"-1500":     "-1.500,00 €",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatEuros(decimal.RequireFromString(in)), in)
	}
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "25", pdf.FormatThousands("25"))
	assert.Equal(t, "25.000", pdf.FormatThousands("25000"))
	assert.Equal(t, "1.000.000", pdf.FormatThousands("1000000"))
}
