package dto

import "github.com/shopspring/decimal"

// DiscountRequest especificación del descuento del documento.
// kind: NONE | PERCENTAGE | FIXED. value se ignora con NONE.
type DiscountRequest struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// LineItemRequest línea de entrada (descripción, cantidad, precio unitario).
// El total de línea siempre lo calcula el servidor, nunca lo manda el cliente.
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuotationRequest body para POST /api/quotations.
type CreateQuotationRequest struct {
	CustomerID string            `json:"customer_id"`
	Title      string            `json:"title"`
	Currency   string            `json:"currency"` // código de 3 letras, ej. SAR, USD
	PreparedBy string            `json:"prepared_by,omitempty"`
	Discount   DiscountRequest   `json:"discount"`
	VATRate    decimal.Decimal   `json:"vat_rate"` // porcentaje en [0,100]
	Items      []LineItemRequest `json:"items"`
	Terms      []string          `json:"terms,omitempty"`
}

// RecalculateRequest body para POST /api/quotations/recalculate: recomputa
// totales de un borrador en edición sin persistir nada.
type RecalculateRequest struct {
	Currency string            `json:"currency"`
	Discount DiscountRequest   `json:"discount"`
	VATRate  decimal.Decimal   `json:"vat_rate"`
	Items    []LineItemRequest `json:"items"`
}

// CommercialResultResponse totales reconciliados, cada campo redondeado de
// forma independiente a 2 decimales.
type CommercialResultResponse struct {
	Currency       string          `json:"currency"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableBase    decimal.Decimal `json:"taxable_base"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// QuotationItemResponse línea en la respuesta.
type QuotationItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// QuotationResponse cotización con detalle para GET /api/quotations/:id.
type QuotationResponse struct {
	ID           string                   `json:"id"`
	Number       string                   `json:"number"`
	Version      int                      `json:"version"`
	CustomerID   string                   `json:"customer_id"`
	CustomerName string                   `json:"customer_name,omitempty"`
	Title        string                   `json:"title"`
	Status       string                   `json:"status"`
	Date         string                   `json:"date"`
	PreparedBy   string                   `json:"prepared_by,omitempty"`
	Totals       CommercialResultResponse `json:"totals"`
	Items        []QuotationItemResponse  `json:"items"`
	Terms        []string                 `json:"terms,omitempty"`
}
