// Package commission calcula honorarios de intermediación (servicio de dominio).
package commission

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Calculate devuelve los honorarios de una operación:
// Honorarios = max(Precio * Porcentaje / 100, Mínimo).
// Un porcentaje negativo o un precio no positivo devuelven cero.
func Calculate(price, percent, minimum decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) || percent.IsNegative() {
		return decimal.Zero
	}
	fee := price.Mul(percent).Div(hundred).Round(2)
	if fee.LessThan(minimum) {
		return minimum.Round(2)
	}
	return fee
}

// WithVAT añade el IVA indicado (en porcentaje) a un importe.
func WithVAT(amount, vatPercent decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(vatPercent).Div(hundred)).Round(2)
}

// RentalFee honorarios de alquiler expresados en mensualidades de renta.
func RentalFee(monthlyRent, months decimal.Decimal) decimal.Decimal {
	if monthlyRent.LessThanOrEqual(decimal.Zero) || months.IsNegative() {
		return decimal.Zero
	}
	return monthlyRent.Mul(months).Round(2)
}
