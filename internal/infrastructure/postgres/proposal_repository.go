package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implementación de ProposalRepository (usable con pool o tx).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository construye el adaptador.
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

const proposalColumns = `id, number, version, customer_id, title, currency, status,
	discount_kind, discount_value, vat_rate,
	subtotal, discount_amount, taxable_base, vat_amount, grand_total,
	conditions, prepared_by, date, created_at, updated_at`

// Create persiste la cabecera de una propuesta.
func (r *ProposalRepo) Create(proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		proposal.ID, proposal.Number, proposal.Version, proposal.CustomerID,
		proposal.Title, proposal.Currency, proposal.Status,
		proposal.DiscountKind, proposal.DiscountValue, proposal.VATRate,
		proposal.Subtotal, proposal.DiscountAmount, proposal.TaxableBase,
		proposal.VATAmount, proposal.GrandTotal,
		proposal.Conditions, proposal.PreparedBy, proposal.Date,
		proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar propuesta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la propuesta.
func (r *ProposalRepo) CreateItem(item *entity.ProposalItem) error {
	query := `
		INSERT INTO proposal_items (id, proposal_id, position, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProposalID, item.Position, item.Description,
		item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insertar línea de propuesta: %w", err)
	}
	return nil
}

// CreateTask persiste una tarea entregable de la propuesta.
func (r *ProposalRepo) CreateTask(task *entity.ProposalTask) error {
	query := `
		INSERT INTO proposal_tasks (id, proposal_id, position, description, duration_days)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.ProposalID, task.Position, task.Description, task.DurationDays,
	)
	if err != nil {
		return fmt.Errorf("insertar tarea: %w", err)
	}
	return nil
}

// GetByID obtiene una propuesta por ID. Devuelve (nil, nil) si no existe.
func (r *ProposalRepo) GetByID(id string) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	var p entity.Proposal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.Version, &p.CustomerID, &p.Title, &p.Currency, &p.Status,
		&p.DiscountKind, &p.DiscountValue, &p.VATRate,
		&p.Subtotal, &p.DiscountAmount, &p.TaxableBase, &p.VATAmount, &p.GrandTotal,
		&p.Conditions, &p.PreparedBy, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar propuesta: %w", err)
	}
	return &p, nil
}

// GetItemsByProposalID lista las líneas de una propuesta, en orden de posición.
func (r *ProposalRepo) GetItemsByProposalID(proposalID string) ([]*entity.ProposalItem, error) {
	query := `
		SELECT id, proposal_id, position, description, quantity, unit_price, line_total
		FROM proposal_items
		WHERE proposal_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de propuesta: %w", err)
	}
	defer rows.Close()

	var items []*entity.ProposalItem
	for rows.Next() {
		var it entity.ProposalItem
		if err := rows.Scan(&it.ID, &it.ProposalID, &it.Position, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("escanear línea: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// GetTasksByProposalID lista las tareas de una propuesta, en orden de posición.
func (r *ProposalRepo) GetTasksByProposalID(proposalID string) ([]*entity.ProposalTask, error) {
	query := `
		SELECT id, proposal_id, position, description, duration_days
		FROM proposal_tasks
		WHERE proposal_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listar tareas: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.ProposalTask
	for rows.Next() {
		var tk entity.ProposalTask
		if err := rows.Scan(&tk.ID, &tk.ProposalID, &tk.Position, &tk.Description, &tk.DurationDays); err != nil {
			return nil, fmt.Errorf("escanear tarea: %w", err)
		}
		tasks = append(tasks, &tk)
	}
	return tasks, rows.Err()
}

// List lista propuestas, las más recientes primero.
func (r *ProposalRepo) List(limit, offset int) ([]*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar propuestas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(
			&p.ID, &p.Number, &p.Version, &p.CustomerID, &p.Title, &p.Currency, &p.Status,
			&p.DiscountKind, &p.DiscountValue, &p.VATRate,
			&p.Subtotal, &p.DiscountAmount, &p.TaxableBase, &p.VATAmount, &p.GrandTotal,
			&p.Conditions, &p.PreparedBy, &p.Date, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear propuesta: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del ciclo de vida del documento.
func (r *ProposalRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE proposals SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("actualizar estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByNumber indica si un número de documento ya está tomado.
func (r *ProposalRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM proposals WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar número: %w", err)
	}
	return exists, nil
}

// CountByYear cuenta las propuestas emitidas en un año (base de la secuencia).
func (r *ProposalRepo) CountByYear(year int) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM proposals WHERE EXTRACT(YEAR FROM date) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar propuestas del año: %w", err)
	}
	return count, nil
}
