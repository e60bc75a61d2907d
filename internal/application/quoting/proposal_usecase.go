package quoting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smartuniit/taskflow-api/internal/application/dto"
	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/repository"
)

// ProposalUseCase crea y consulta propuestas comerciales. Comparte con las
// cotizaciones la calculadora y la numeración; añade condiciones adicionales
// y tareas entregables.
type ProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	customerRepo repository.CustomerRepository
	tx           TxRunner
	now          func() time.Time
}

// NewProposalUseCase construye el caso de uso.
func NewProposalUseCase(proposalRepo repository.ProposalRepository, customerRepo repository.CustomerRepository, tx TxRunner) *ProposalUseCase {
	return &ProposalUseCase{
		proposalRepo: proposalRepo,
		customerRepo: customerRepo,
		tx:           tx,
		now:          time.Now,
	}
}

// Create valida, calcula totales, numera y persiste la propuesta con sus
// líneas y tareas.
func (uc *ProposalUseCase) Create(ctx context.Context, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
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
	seq, err := uc.proposalRepo.CountByYear(now.Year())
	if err != nil {
		return nil, fmt.Errorf("secuencia de propuestas: %w", err)
	}
	number, err := nextDocumentNumber(proposalPrefix, now, seq, uc.proposalRepo.ExistsByNumber)
	if err != nil {
		return nil, err
	}

	p := &entity.Proposal{
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
		Conditions:     in.Conditions,
		PreparedBy:     in.PreparedBy,
		Date:           now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := make([]*entity.ProposalItem, 0, len(in.Items))
	for i, it := range in.Items {
		items = append(items, &entity.ProposalItem{
			ID:          uuid.New().String(),
			ProposalID:  p.ID,
			Position:    i + 1,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   res.LineTotals[i],
		})
	}
	tasks := make([]*entity.ProposalTask, 0, len(in.Tasks))
	for i, tk := range in.Tasks {
		tasks = append(tasks, &entity.ProposalTask{
			ID:           uuid.New().String(),
			ProposalID:   p.ID,
			Position:     i + 1,
			Description:  tk.Description,
			DurationDays: tk.DurationDays,
		})
	}

	// Cabecera, líneas y tareas en la misma transacción.
	err = uc.tx.RunProposal(ctx, func(repo repository.ProposalRepository) error {
		if err := repo.Create(p); err != nil {
			return err
		}
		for _, item := range items {
			if err := repo.CreateItem(item); err != nil {
				return err
			}
		}
		for _, task := range tasks {
			if err := repo.CreateTask(task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toProposalResponse(p, customer.Name, items, tasks), nil
}

// GetByID obtiene una propuesta con líneas y tareas.
func (uc *ProposalUseCase) GetByID(ctx context.Context, id string) (*dto.ProposalResponse, error) {
	p, err := uc.proposalRepo.GetByID(id)
	if err != nil || p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.proposalRepo.GetItemsByProposalID(id)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.proposalRepo.GetTasksByProposalID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(p.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toProposalResponse(p, customerName, items, tasks), nil
}

// List lista propuestas con paginación.
func (uc *ProposalUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProposalResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.proposalRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProposalResponse(p, "", nil, nil))
	}
	return out, nil
}

// UpdateStatus transiciona el estado del documento (DRAFT→SENT→APPROVED...).
func (uc *ProposalUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.DocStatusDraft, entity.DocStatusSent, entity.DocStatusApproved,
		entity.DocStatusRejected, entity.DocStatusExpired:
	default:
		return domain.ErrInvalidInput
	}
	p, err := uc.proposalRepo.GetByID(id)
	if err != nil || p == nil {
		return domain.ErrNotFound
	}
	return uc.proposalRepo.UpdateStatus(id, status)
}

func toProposalResponse(p *entity.Proposal, customerName string, items []*entity.ProposalItem, tasks []*entity.ProposalTask) *dto.ProposalResponse {
	resp := &dto.ProposalResponse{
		ID:           p.ID,
		Number:       p.Number,
		Version:      p.Version,
		CustomerID:   p.CustomerID,
		CustomerName: customerName,
		Title:        p.Title,
		Status:       p.Status,
		Date:         p.Date.Format("2006-01-02"),
		PreparedBy:   p.PreparedBy,
		Totals: dto.CommercialResultResponse{
			Currency:       p.Currency,
			Subtotal:       p.Subtotal,
			DiscountAmount: p.DiscountAmount,
			TaxableBase:    p.TaxableBase,
			VATRate:        p.VATRate,
			VATAmount:      p.VATAmount,
			GrandTotal:     p.GrandTotal,
		},
		Conditions: p.Conditions,
		Items:      make([]dto.QuotationItemResponse, 0, len(items)),
		Tasks:      make([]dto.ProposalTaskResponse, 0, len(tasks)),
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
	for _, tk := range tasks {
		resp.Tasks = append(resp.Tasks, dto.ProposalTaskResponse{
			ID:           tk.ID,
			Position:     tk.Position,
			Description:  tk.Description,
			DurationDays: tk.DurationDays,
		})
	}
	return resp
}
