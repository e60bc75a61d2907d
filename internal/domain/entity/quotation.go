package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un documento comercial (cotización o propuesta).
const (
	DocStatusDraft    = "DRAFT"    // Editable; los totales se recalculan en cada cambio
	DocStatusSent     = "SENT"     // Enviada al cliente
	DocStatusApproved = "APPROVED" // Aceptada por el cliente
	DocStatusRejected = "REJECTED" // Rechazada por el cliente
	DocStatusExpired  = "EXPIRED"  // Venció la fecha de validez
)

// Tipos de descuento aplicables una sola vez sobre el subtotal, antes del IVA.
const (
	DiscountNone       = "NONE"
	DiscountPercentage = "PERCENTAGE" // Value en [0,100]
	DiscountFixed      = "FIXED"      // Value >= 0; se recorta al subtotal
)

// Quotation representa la cabecera de una cotización.
// Subtotal, DiscountAmount, TaxableBase, VATAmount y GrandTotal se persisten
// como campos independientes ya redondeados: cada uno debe cuadrar por sí solo
// con lo que muestra el documento exportado.
type Quotation struct {
	ID             string
	Number         string // QT-<año>-<secuencia>
	Version        int
	CustomerID     string
	Title          string
	Currency       string // código de 3 letras; se transporta, nunca se convierte
	Status         string
	DiscountKind   string
	DiscountValue  decimal.Decimal
	VATRate        decimal.Decimal // porcentaje en [0,100]
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	VATAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	Terms          []string // cláusulas de términos y condiciones, en orden
	PreparedBy     string
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// QuotationItem es una línea de la cotización.
// Invariante: LineTotal == round2(Quantity * UnitPrice); se recalcula siempre
// que cambien cantidad o precio, nunca se edita directo.
type QuotationItem struct {
	ID          string
	QuotationID string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
