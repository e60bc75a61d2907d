// Package commercial implementa la calculadora de totales comerciales de
// cotizaciones y propuestas (servicio de dominio, funciones puras).
//
// Cascada de cálculo:
//
//	LineTotal_i  = round2(Quantity_i * UnitPrice_i)
//	Subtotal     = Σ LineTotal_i
//	Descuento    = 0 | round2(Subtotal * pct/100) | min(fijo, Subtotal)
//	BaseGravable = Subtotal - Descuento          (nunca negativa)
//	IVA          = round2(BaseGravable * tasa/100)
//	Total        = BaseGravable + IVA
//
// Todo valor monetario intermedio se redondea a 2 decimales (mitad hacia
// arriba) en el momento en que se calcula, no al final: los campos se
// persisten por separado y cada uno debe cuadrar individualmente.
package commercial

import (
	"github.com/shopspring/decimal"

	"github.com/smartuniit/taskflow-api/internal/domain"
)

// LineItem es una línea de entrada de la calculadora.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Discount especifica el descuento del documento. Se aplica una sola vez,
// después de sumar todas las líneas y antes del IVA.
type Discount struct {
	Kind  string // entity.DiscountNone | DiscountPercentage | DiscountFixed
	Value decimal.Decimal
}

// Result agrupa los totales calculados, todos ya redondeados a 2 decimales.
// Currency se transporta junto al resultado pero nunca se convierte.
type Result struct {
	Currency       string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	VATRate        decimal.Decimal
	VATAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	LineTotals     []decimal.Decimal // uno por línea, en el orden de entrada
}

var oneHundred = decimal.NewFromInt(100)

// round2 redondea a 2 decimales, mitad hacia arriba (los montos aquí nunca
// son negativos, así que Round de shopspring equivale a half-up).
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute calcula los totales comerciales de un documento. Función pura:
// mismos insumos producen bit a bit el mismo resultado, sin estado oculto.
//
// Una lista de líneas vacía es válida y produce todos los montos en cero
// (la tasa de IVA se devuelve tal cual). La validación rechaza el cálculo
// completo, nunca entrega resultados parciales:
//   - domain.ErrInvalidLineItem: cantidad o precio unitario negativo.
//   - domain.ErrInvalidDiscount: porcentaje fuera de [0,100], monto fijo
//     negativo o tipo de descuento desconocido.
//   - domain.ErrInvalidVATRate: tasa fuera de [0,100].
func Compute(items []LineItem, disc Discount, vatRate decimal.Decimal, currency string) (*Result, error) {
	if vatRate.IsNegative() || vatRate.GreaterThan(oneHundred) {
		return nil, domain.ErrInvalidVATRate
	}
	if err := validateDiscount(disc); err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidLineItem
		}
	}

	// Subtotal: suma de líneas ya redondeadas. Como cada sumando está fijo a
	// 2 decimales, la suma es asociativa y el resultado no depende del orden.
	lineTotals := make([]decimal.Decimal, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		lineTotals[i] = round2(item.Quantity.Mul(item.UnitPrice))
		subtotal = subtotal.Add(lineTotals[i])
	}

	discountAmount := discountOver(subtotal, disc)
	taxableBase := subtotal.Sub(discountAmount)
	vatAmount := round2(taxableBase.Mul(vatRate).Div(oneHundred))
	grandTotal := taxableBase.Add(vatAmount)

	return &Result{
		Currency:       currency,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		VATRate:        vatRate,
		VATAmount:      vatAmount,
		GrandTotal:     grandTotal,
		LineTotals:     lineTotals,
	}, nil
}

// LineTotal calcula el total de una sola línea (para recomputar al editar
// cantidad o precio). Mismo redondeo que Compute.
func LineTotal(quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() || unitPrice.IsNegative() {
		return decimal.Zero, domain.ErrInvalidLineItem
	}
	return round2(quantity.Mul(unitPrice)), nil
}

func validateDiscount(disc Discount) error {
	switch disc.Kind {
	case "", "NONE":
		return nil
	case "PERCENTAGE":
		if disc.Value.IsNegative() || disc.Value.GreaterThan(oneHundred) {
			return domain.ErrInvalidDiscount
		}
		return nil
	case "FIXED":
		if disc.Value.IsNegative() {
			return domain.ErrInvalidDiscount
		}
		return nil
	default:
		return domain.ErrInvalidDiscount
	}
}

// discountOver aplica el descuento sobre el subtotal. Un descuento fijo mayor
// al subtotal se recorta al subtotal: la base gravable nunca es negativa.
func discountOver(subtotal decimal.Decimal, disc Discount) decimal.Decimal {
	switch disc.Kind {
	case "PERCENTAGE":
		return round2(subtotal.Mul(disc.Value).Div(oneHundred))
	case "FIXED":
		fixed := round2(disc.Value)
		if fixed.GreaterThan(subtotal) {
			return subtotal
		}
		return fixed
	default:
		return decimal.Zero
	}
}
