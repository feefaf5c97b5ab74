// Package money centraliza las reglas de precisión del motor: cantidades a 3
// decimales y valores monetarios a 2, con redondeo half-up. Todos los demás
// componentes pasan cada cantidad, precio y valor por estas funciones antes de
// almacenar o devolver, para que los agregados calculados por caminos
// independientes coincidan.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// QuantityScale decimales para cantidades.
	QuantityScale = 3
	// CurrencyScale decimales para precios y valores monetarios.
	CurrencyScale = 2
)

// RoundQuantity redondea una cantidad a 3 decimales (half-up).
func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, QuantityScale)
}

// RoundCurrency redondea un valor monetario a 2 decimales (half-up).
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, CurrencyScale)
}

// roundHalfUp multiplica por 10^scale, redondea al entero más cercano con
// .5 hacia arriba, y divide de vuelta. decimal.Round usa half-away-from-zero,
// que coincide con half-up para valores no negativos; para negativos se ajusta
// para que -0.125 a 2 decimales dé -0.12 y no -0.13.
func roundHalfUp(d decimal.Decimal, scale int32) decimal.Decimal {
	if d.IsNegative() {
		shifted := d.Shift(scale)
		rounded := shifted.Neg().Sub(half).Ceil().Neg()
		return normalizeZero(rounded.Shift(-scale))
	}
	return normalizeZero(d.Round(scale))
}

var half = decimal.New(5, -1)

// normalizeZero colapsa cualquier representación de cero (incluido el cero
// negativo de una entrada float) a decimal.Zero.
func normalizeZero(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d
}

// FromFloat convierte un float64 de la frontera (JSON, cálculos del caller) a
// decimal. NaN y ±Inf se tratan como 0; el cero negativo se normaliza a 0.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	if f == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// QuantityFromFloat convierte y redondea una cantidad de la frontera.
func QuantityFromFloat(f float64) decimal.Decimal {
	return RoundQuantity(FromFloat(f))
}

// CurrencyFromFloat convierte y redondea un valor monetario de la frontera.
func CurrencyFromFloat(f float64) decimal.Decimal {
	return RoundCurrency(FromFloat(f))
}
