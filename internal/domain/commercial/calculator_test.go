package commercial_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/commercial"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores exactos: los totales calculados deben coincidir dígito a dígito con
// los valores que se persisten y se imprimen en el documento. Si alguien cambia
// el orden de redondeo o la cascada descuento→IVA, estos tests fallan primero.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCompute_VectorPorcentaje(t *testing.T) {
	// Subtotal 1000, descuento 10% y IVA 15%: valores de referencia exactos.
	items := []commercial.LineItem{
		{Description: "Servicio", Quantity: dec("1"), UnitPrice: dec("1000")},
	}
	res, err := commercial.Compute(items, commercial.Discount{Kind: "PERCENTAGE", Value: dec("10")}, dec("15"), "USD")
	require.NoError(t, err)

	assert.True(t, res.Subtotal.Equal(dec("1000.00")), "subtotal: %s", res.Subtotal)
	assert.True(t, res.DiscountAmount.Equal(dec("100.00")), "descuento: %s", res.DiscountAmount)
	assert.True(t, res.TaxableBase.Equal(dec("900.00")), "base gravable: %s", res.TaxableBase)
	assert.True(t, res.VATAmount.Equal(dec("135.00")), "IVA: %s", res.VATAmount)
	assert.True(t, res.GrandTotal.Equal(dec("1035.00")), "total: %s", res.GrandTotal)
}

func TestCompute_VectorObraCivil(t *testing.T) {
	// Escenario de punta a punta: dos líneas de obra, descuento 15%, IVA 15%.
	items := []commercial.LineItem{
		{Description: "Cable Trench Excavation", Quantity: dec("195"), UnitPrice: dec("50")},
		{Description: "Fiber Pull", Quantity: dec("75"), UnitPrice: dec("18")},
	}
	res, err := commercial.Compute(items, commercial.Discount{Kind: "PERCENTAGE", Value: dec("15")}, dec("15"), "SAR")
	require.NoError(t, err)

	require.Len(t, res.LineTotals, 2)
	assert.True(t, res.LineTotals[0].Equal(dec("9750.00")), "línea 1: %s", res.LineTotals[0])
	assert.True(t, res.LineTotals[1].Equal(dec("1350.00")), "línea 2: %s", res.LineTotals[1])
	assert.True(t, res.Subtotal.Equal(dec("11100.00")), "subtotal: %s", res.Subtotal)
	assert.True(t, res.DiscountAmount.Equal(dec("1665.00")), "descuento: %s", res.DiscountAmount)
	assert.True(t, res.TaxableBase.Equal(dec("9435.00")), "base gravable: %s", res.TaxableBase)
	assert.True(t, res.VATAmount.Equal(dec("1415.25")), "IVA: %s", res.VATAmount)
	assert.True(t, res.GrandTotal.Equal(dec("10850.25")), "total: %s", res.GrandTotal)
	assert.Equal(t, "SAR", res.Currency, "la moneda se transporta sin conversión")
}

// TestCompute_SubtotalInvarianteAlOrden: como cada línea se redondea antes de
// sumar, el subtotal es idéntico para cualquier permutación de las líneas.
func TestCompute_SubtotalInvarianteAlOrden(t *testing.T) {
	items := []commercial.LineItem{
		{Quantity: dec("3"), UnitPrice: dec("33.335")},
		{Quantity: dec("7.5"), UnitPrice: dec("0.333")},
		{Quantity: dec("195"), UnitPrice: dec("50")},
		{Quantity: dec("1"), UnitPrice: dec("0.005")},
		{Quantity: dec("12"), UnitPrice: dec("99.99")},
	}
	base, err := commercial.Compute(items, commercial.Discount{Kind: "NONE"}, dec("19"), "COP")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]commercial.LineItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		res, err := commercial.Compute(shuffled, commercial.Discount{Kind: "NONE"}, dec("19"), "COP")
		require.NoError(t, err)
		assert.True(t, base.Subtotal.Equal(res.Subtotal),
			"el subtotal debe ser idéntico en cualquier orden: %s vs %s", base.Subtotal, res.Subtotal)
		assert.True(t, base.GrandTotal.Equal(res.GrandTotal),
			"el total debe ser idéntico en cualquier orden")
	}
}

// TestCompute_DescuentoFijoRecortado: un descuento fijo mayor al subtotal se
// recorta al subtotal, la base gravable queda en cero y nunca negativa.
func TestCompute_DescuentoFijoRecortado(t *testing.T) {
	items := []commercial.LineItem{
		{Quantity: dec("2"), UnitPrice: dec("40")},
	}
	res, err := commercial.Compute(items, commercial.Discount{Kind: "FIXED", Value: dec("500")}, dec("15"), "USD")
	require.NoError(t, err)

	assert.True(t, res.Subtotal.Equal(dec("80.00")))
	assert.True(t, res.DiscountAmount.Equal(dec("80.00")), "el descuento se recorta al subtotal")
	assert.True(t, res.TaxableBase.IsZero(), "la base gravable nunca es negativa")
	assert.True(t, res.VATAmount.IsZero())
	assert.True(t, res.GrandTotal.IsZero())
}

func TestCompute_DescuentoFijoMenorAlSubtotal(t *testing.T) {
	items := []commercial.LineItem{
		{Quantity: dec("1"), UnitPrice: dec("100")},
	}
	res, err := commercial.Compute(items, commercial.Discount{Kind: "FIXED", Value: dec("30")}, dec("0"), "USD")
	require.NoError(t, err)
	assert.True(t, res.DiscountAmount.Equal(dec("30.00")))
	assert.True(t, res.TaxableBase.Equal(dec("70.00")))
	assert.True(t, res.GrandTotal.Equal(dec("70.00")), "con IVA 0 el total es la base gravable")
}

// TestCompute_SinLineas: lista vacía es válida, todos los montos en cero y la
// tasa de IVA se devuelve tal cual, sin importar el descuento configurado.
func TestCompute_SinLineas(t *testing.T) {
	res, err := commercial.Compute(nil, commercial.Discount{Kind: "PERCENTAGE", Value: dec("50")}, dec("15"), "EUR")
	require.NoError(t, err)

	assert.True(t, res.Subtotal.IsZero())
	assert.True(t, res.DiscountAmount.IsZero())
	assert.True(t, res.TaxableBase.IsZero())
	assert.True(t, res.VATAmount.IsZero())
	assert.True(t, res.GrandTotal.IsZero())
	assert.True(t, res.VATRate.Equal(dec("15")), "la tasa se hace eco aunque no haya líneas")
	assert.Empty(t, res.LineTotals)
}

// TestCompute_RedondeoIntermedio: cada línea se redondea al calcularse; el
// subtotal es la suma de líneas redondeadas, no el redondeo de la suma cruda.
func TestCompute_RedondeoIntermedio(t *testing.T) {
	// 3 * 0.335 = 1.005 → round2 = 1.01 (mitad hacia arriba) por línea.
	items := []commercial.LineItem{
		{Quantity: dec("3"), UnitPrice: dec("0.335")},
		{Quantity: dec("3"), UnitPrice: dec("0.335")},
	}
	res, err := commercial.Compute(items, commercial.Discount{Kind: "NONE"}, dec("0"), "USD")
	require.NoError(t, err)
	assert.True(t, res.LineTotals[0].Equal(dec("1.01")), "redondeo half-up por línea: %s", res.LineTotals[0])
	assert.True(t, res.Subtotal.Equal(dec("2.02")), "suma de líneas ya redondeadas: %s", res.Subtotal)
}

// TestCompute_Determinista: mismos insumos, resultado bit a bit idéntico.
func TestCompute_Determinista(t *testing.T) {
	items := []commercial.LineItem{
		{Quantity: dec("7"), UnitPrice: dec("13.37")},
	}
	disc := commercial.Discount{Kind: "PERCENTAGE", Value: dec("12.5")}

	r1, err1 := commercial.Compute(items, disc, dec("19"), "COP")
	r2, err2 := commercial.Compute(items, disc, dec("19"), "COP")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2, "Compute no tiene estado oculto ni dependencia del reloj")
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCompute_ErrorLineaNegativa(t *testing.T) {
	_, err := commercial.Compute([]commercial.LineItem{
		{Quantity: dec("-1"), UnitPrice: dec("10")},
	}, commercial.Discount{Kind: "NONE"}, dec("15"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem, "cantidad negativa debe rechazarse")

	_, err = commercial.Compute([]commercial.LineItem{
		{Quantity: dec("1"), UnitPrice: dec("-10")},
	}, commercial.Discount{Kind: "NONE"}, dec("15"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem, "precio negativo debe rechazarse")
}

func TestCompute_ErrorDescuentoInvalido(t *testing.T) {
	items := []commercial.LineItem{{Quantity: dec("1"), UnitPrice: dec("10")}}

	_, err := commercial.Compute(items, commercial.Discount{Kind: "PERCENTAGE", Value: dec("101")}, dec("15"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "porcentaje fuera de [0,100]")

	_, err = commercial.Compute(items, commercial.Discount{Kind: "FIXED", Value: dec("-5")}, dec("15"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "monto fijo negativo")

	_, err = commercial.Compute(items, commercial.Discount{Kind: "COUPON"}, dec("15"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "tipo de descuento desconocido")
}

func TestCompute_ErrorTasaIVAInvalida(t *testing.T) {
	items := []commercial.LineItem{{Quantity: dec("1"), UnitPrice: dec("10")}}

	_, err := commercial.Compute(items, commercial.Discount{Kind: "NONE"}, dec("-1"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)

	_, err = commercial.Compute(items, commercial.Discount{Kind: "NONE"}, dec("150"), "USD")
	assert.ErrorIs(t, err, domain.ErrInvalidVATRate)
}

func TestLineTotal(t *testing.T) {
	total, err := commercial.LineTotal(dec("195"), dec("50"))
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("9750.00")))

	_, err = commercial.LineTotal(dec("-1"), dec("50"))
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}
