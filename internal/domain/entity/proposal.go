package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal representa una propuesta comercial: igual que la cotización lleva
// líneas valorizadas y totales reconciliados, pero añade condiciones
// adicionales y el listado de tareas entregables del proyecto.
type Proposal struct {
	ID             string
	Number         string // PR-<año>-<secuencia>
	Version        int
	CustomerID     string
	Title          string
	Currency       string
	Status         string
	DiscountKind   string
	DiscountValue  decimal.Decimal
	VATRate        decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	VATAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	Conditions     []string // cláusulas de "Condiciones adicionales", en orden
	PreparedBy     string
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProposalItem es una línea valorizada de la propuesta.
type ProposalItem struct {
	ID          string
	ProposalID  string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ProposalTask es una tarea entregable listada en la propuesta (sin valorizar).
type ProposalTask struct {
	ID           string
	ProposalID   string
	Position     int
	Description  string
	DurationDays int
}
