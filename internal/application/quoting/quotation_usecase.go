package quoting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartuniit/taskflow-api/internal/application/dto"
	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/commercial"
	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/repository"
)

// QuotationUseCase crea, consulta y recalcula cotizaciones. El cálculo de
// totales vive en el dominio (commercial.Compute); aquí se orquesta
// validación, numeración y persistencia.
type QuotationUseCase struct {
	quotationRepo repository.QuotationRepository
	customerRepo  repository.CustomerRepository
	tx            TxRunner
	now           func() time.Time
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(quotationRepo repository.QuotationRepository, customerRepo repository.CustomerRepository, tx TxRunner) *QuotationUseCase {
	return &QuotationUseCase{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		tx:            tx,
		now:           time.Now,
	}
}

// Create valida la solicitud, calcula los totales, asigna número de
// documento y persiste cabecera y líneas. La cotización nace en DRAFT.
func (uc *QuotationUseCase) Create(ctx context.Context, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.CustomerID == "" || in.Title == "" || len(in.Currency) != 3 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	res, err := computeFromRequest(in.Items, in.Discount, in.VATRate, in.Currency)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	seq, err := uc.quotationRepo.CountByYear(now.Year())
	if err != nil {
		return nil, fmt.Errorf("secuencia de cotizaciones: %w", err)
	}
	number, err := nextDocumentNumber(quotationPrefix, now, seq, uc.quotationRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	q := &entity.Quotation{
		ID:             uuid.New().String(),
		Number:         number,
		Version:        1,
		CustomerID:     in.CustomerID,
		Title:          in.Title,
		Currency:       in.Currency,
		Status:         entity.DocStatusDraft,
		DiscountKind:   normalizeDiscountKind(in.Discount.Kind),
		DiscountValue:  in.Discount.Value,
		VATRate:        res.VATRate,
		Subtotal:       res.Subtotal,
		DiscountAmount: res.DiscountAmount,
		TaxableBase:    res.TaxableBase,
		VATAmount:      res.VATAmount,
		GrandTotal:     res.GrandTotal,
		Terms:          in.Terms,
		PreparedBy:     in.PreparedBy,
		Date:           now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := make([]*entity.QuotationItem, 0, len(in.Items))
	for i, it := range in.Items {
		items = append(items, &entity.QuotationItem{
			ID:          uuid.New().String(),
			QuotationID: q.ID,
			Position:    i + 1,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   res.LineTotals[i],
		})
	}

	// Cabecera y líneas se insertan en la misma transacción: nunca queda una
	// cotización sin sus partidas.
	err = uc.tx.RunQuotation(ctx, func(repo repository.QuotationRepository) error {
		if err := repo.Create(q); err != nil {
			return err
		}
		for _, item := range items {
			if err := repo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toQuotationResponse(q, customer.Name, items), nil
}

// GetByID obtiene una cotización con su detalle completo.
func (uc *QuotationUseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil || q == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(q.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toQuotationResponse(q, customerName, items), nil
}

// List lista cotizaciones con paginación.
func (uc *QuotationUseCase) List(ctx context.Context, limit, offset int) ([]*dto.QuotationResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.quotationRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuotationResponse(q, "", nil))
	}
	return out, nil
}

// UpdateStatus transiciona el estado del documento (DRAFT→SENT→APPROVED...).
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.DocStatusDraft, entity.DocStatusSent, entity.DocStatusApproved,
		entity.DocStatusRejected, entity.DocStatusExpired:
	default:
		return domain.ErrInvalidInput
	}
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil || q == nil {
		return domain.ErrNotFound
	}
	return uc.quotationRepo.UpdateStatus(id, status)
}

// Recalculate recomputa los totales de un borrador en edición sin persistir:
// la UI lo invoca en cada cambio de línea, descuento o tasa (el recálculo
// completo es barato, no hay contrato incremental).
func (uc *QuotationUseCase) Recalculate(ctx context.Context, in dto.RecalculateRequest) (*dto.CommercialResultResponse, error) {
	res, err := computeFromRequest(in.Items, in.Discount, in.VATRate, in.Currency)
	if err != nil {
		return nil, err
	}
	out := toCommercialResponse(res)
	return &out, nil
}

// ── helpers compartidos con propuestas ────────────────────────────────────────

// computeFromRequest mapea las líneas del DTO al dominio y ejecuta la
// calculadora comercial.
func computeFromRequest(items []dto.LineItemRequest, disc dto.DiscountRequest, vatRate decimal.Decimal, currency string) (*commercial.Result, error) {
	lines := make([]commercial.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, commercial.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return commercial.Compute(lines, commercial.Discount{
		Kind:  normalizeDiscountKind(disc.Kind),
		Value: disc.Value,
	}, vatRate, currency)
}

// normalizeDiscountKind acepta el tipo en cualquier caja y vacío como NONE.
func normalizeDiscountKind(kind string) string {
	switch strings.ToUpper(strings.TrimSpace(kind)) {
	case "", entity.DiscountNone:
		return entity.DiscountNone
	case entity.DiscountPercentage:
		return entity.DiscountPercentage
	case entity.DiscountFixed:
		return entity.DiscountFixed
	default:
		// Se deja pasar tal cual: commercial.Compute lo rechazará con
		// ErrInvalidDiscount, el punto único de validación.
		return strings.ToUpper(strings.TrimSpace(kind))
	}
}

func toCommercialResponse(res *commercial.Result) dto.CommercialResultResponse {
	return dto.CommercialResultResponse{
		Currency:       res.Currency,
		Subtotal:       res.Subtotal,
		DiscountAmount: res.DiscountAmount,
		TaxableBase:    res.TaxableBase,
		VATRate:        res.VATRate,
		VATAmount:      res.VATAmount,
		GrandTotal:     res.GrandTotal,
	}
}

func toQuotationResponse(q *entity.Quotation, customerName string, items []*entity.QuotationItem) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:           q.ID,
		Number:       q.Number,
		Version:      q.Version,
		CustomerID:   q.CustomerID,
		CustomerName: customerName,
		Title:        q.Title,
		Status:       q.Status,
		Date:         q.Date.Format("2006-01-02"),
		PreparedBy:   q.PreparedBy,
		Totals: dto.CommercialResultResponse{
			Currency:       q.Currency,
			Subtotal:       q.Subtotal,
			DiscountAmount: q.DiscountAmount,
			TaxableBase:    q.TaxableBase,
			VATRate:        q.VATRate,
			VATAmount:      q.VATAmount,
			GrandTotal:     q.GrandTotal,
		},
		Terms: q.Terms,
		Items: make([]dto.QuotationItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return resp
}
