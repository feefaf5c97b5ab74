package money_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Lotes-api/internal/domain/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRoundCurrency_HalfUp(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"12.345", "12.35"}, // .5 sube
		{"12.344", "12.34"},
		{"5.666666", "5.67"},
		{"85", "85"},
		{"0.005", "0.01"},
		{"0.004", "0"},
	}
	for _, c := range cases {
		got := money.RoundCurrency(dec(c.in))
		assert.True(t, dec(c.expected).Equal(got),
			"RoundCurrency(%s) = %s, esperado %s", c.in, got, c.expected)
	}
}

func TestRoundCurrency_NegativosHalfUp(t *testing.T) {
	// Half-up redondea .5 hacia arriba (hacia +inf), también en negativos:
	// -0.125 a 2 decimales da -0.12, no -0.13.
	assert.True(t, dec("-0.12").Equal(money.RoundCurrency(dec("-0.125"))))
	assert.True(t, dec("-0.13").Equal(money.RoundCurrency(dec("-0.126"))))
	assert.True(t, dec("-0.12").Equal(money.RoundCurrency(dec("-0.124"))))
}

func TestRoundQuantity_TresDecimales(t *testing.T) {
	assert.True(t, dec("1.234").Equal(money.RoundQuantity(dec("1.2344"))))
	assert.True(t, dec("1.235").Equal(money.RoundQuantity(dec("1.2345"))))
	assert.True(t, dec("10").Equal(money.RoundQuantity(dec("10"))))
}

func TestFromFloat_NoFinitosSonCero(t *testing.T) {
	assert.True(t, money.FromFloat(math.NaN()).IsZero())
	assert.True(t, money.FromFloat(math.Inf(1)).IsZero())
	assert.True(t, money.FromFloat(math.Inf(-1)).IsZero())
}

func TestFromFloat_CeroNegativoSeNormaliza(t *testing.T) {
	negZero := math.Copysign(0, -1)
	got := money.FromFloat(negZero)
	assert.True(t, got.IsZero())
	assert.Equal(t, "0", got.String())
}

func TestCurrencyFromFloat_RedondeaEnFrontera(t *testing.T) {
	assert.True(t, dec("12.35").Equal(money.CurrencyFromFloat(12.345)))
	assert.True(t, dec("3.5").Equal(money.QuantityFromFloat(3.4999)))
}
