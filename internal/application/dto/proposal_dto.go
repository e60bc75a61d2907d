package dto

import "github.com/shopspring/decimal"

// ProposalTaskRequest tarea entregable de la propuesta (sin valorizar).
type ProposalTaskRequest struct {
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days,omitempty"`
}

// CreateProposalRequest body para POST /api/proposals.
type CreateProposalRequest struct {
	CustomerID string                `json:"customer_id"`
	Title      string                `json:"title"`
	Currency   string                `json:"currency"`
	PreparedBy string                `json:"prepared_by,omitempty"`
	Discount   DiscountRequest       `json:"discount"`
	VATRate    decimal.Decimal       `json:"vat_rate"`
	Items      []LineItemRequest     `json:"items"`
	Conditions []string              `json:"conditions,omitempty"`
	Tasks      []ProposalTaskRequest `json:"tasks,omitempty"`
}

// ProposalTaskResponse tarea entregable en la respuesta.
type ProposalTaskResponse struct {
	ID           string `json:"id"`
	Position     int    `json:"position"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days,omitempty"`
}

// ProposalResponse propuesta con detalle para GET /api/proposals/:id.
type ProposalResponse struct {
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
	Conditions   []string                 `json:"conditions,omitempty"`
	Tasks        []ProposalTaskResponse   `json:"tasks,omitempty"`
}
