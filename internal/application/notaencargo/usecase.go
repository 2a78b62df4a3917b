// Package notaencargo genera la nota de encargo (mandato de venta o alquiler) en PDF.
package notaencargo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/domain"
	"github.com/jhoicas/crm-inmobiliario/internal/domain/commission"
	"github.com/jhoicas/crm-inmobiliario/pkg/nif"
)

// VATPercent IVA general aplicado a los honorarios.
var VATPercent = decimal.NewFromInt(21)

// ErrMissingData el cuerpo no trae el bloque data.
var ErrMissingData = fmt.Errorf("data es obligatorio: %w", domain.ErrValidation)

// UseCase valida los datos, calcula honorarios y delega el render.
type UseCase struct {
	renderer ports.NotaEncargoRenderer
	timeout  time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. timeout acota cada generación.
func NewUseCase(renderer ports.NotaEncargoRenderer, timeout time.Duration, log zerolog.Logger) *UseCase {
	return &UseCase{
		renderer: renderer,
		timeout:  timeout,
		log:      log.With().Str("component", "nota-encargo").Logger(),
		now:      time.Now,
	}
}

// Generate devuelve (pdf, filename).
//
// Retorna:
//   - domain.ErrValidation  si faltan datos o el NIF del cliente no es válido.
//   - domain.ErrTransient   si la generación supera el timeout.
func (uc *UseCase) Generate(ctx context.Context, data *dto.NotaEncargoData) ([]byte, string, error) {
	if data == nil {
		return nil, "", ErrMissingData
	}
	if err := data.Validate(); err != nil {
		return nil, "", err
	}
	if data.Client.NIF != "" {
		if _, err := nif.Validate(data.Client.NIF); err != nil {
			return nil, "", fmt.Errorf("client.nif: %v: %w", err, domain.ErrValidation)
		}
		data.Client.NIF = nif.Normalize(data.Client.NIF)
	}
	data.Commission.Amount = Fee(data.Operation.Price, data.Commission)

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}
	pdf, err := uc.renderer.Render(ctx, data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", fmt.Errorf("nota de encargo: %v: %w", err, domain.ErrTransient)
		}
		return nil, "", fmt.Errorf("nota de encargo: generación fallida: %w", err)
	}

	filename := fmt.Sprintf("nota-encargo-%s-%d.pdf", data.DocumentNumber, uc.now().Unix())
	uc.log.Info().
		Str("document_number", data.DocumentNumber).
		Int("bytes", len(pdf)).
		Msg("nota de encargo generada")
	return pdf, filename, nil
}

// Fee honorarios de la nota: importe fijo si se indica, si no porcentaje sobre el precio.
// Con IncludesVAT se suma el IVA.
func Fee(price decimal.Decimal, fee dto.NotaEncargoFee) decimal.Decimal {
	amount := fee.FixedAmount
	if !amount.IsPositive() {
		amount = commission.Calculate(price, fee.Percent, decimal.Zero)
	}
	if fee.IncludesVAT {
		amount = commission.WithVAT(amount, VATPercent)
	}
	return amount.Round(2)
}
