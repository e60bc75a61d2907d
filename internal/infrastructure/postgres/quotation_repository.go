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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador.
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, number, version, customer_id, title, currency, status,
	discount_kind, discount_value, vat_rate,
	subtotal, discount_amount, taxable_base, vat_amount, grand_total,
	terms, prepared_by, date, created_at, updated_at`

// Create persiste la cabecera de una cotización. Los montos llegan ya
// calculados y redondeados; el repositorio no recalcula nada.
func (r *QuotationRepo) Create(quotation *entity.Quotation) error {
	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.Number, quotation.Version, quotation.CustomerID,
		quotation.Title, quotation.Currency, quotation.Status,
		quotation.DiscountKind, quotation.DiscountValue, quotation.VATRate,
		quotation.Subtotal, quotation.DiscountAmount, quotation.TaxableBase,
		quotation.VATAmount, quotation.GrandTotal,
		quotation.Terms, quotation.PreparedBy, quotation.Date,
		quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar cotización: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la cotización.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	query := `
		INSERT INTO quotation_items (id, quotation_id, position, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuotationID, item.Position, item.Description,
		item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insertar línea de cotización: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID. Devuelve (nil, nil) si no existe.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	var q entity.Quotation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&q.ID, &q.Number, &q.Version, &q.CustomerID, &q.Title, &q.Currency, &q.Status,
		&q.DiscountKind, &q.DiscountValue, &q.VATRate,
		&q.Subtotal, &q.DiscountAmount, &q.TaxableBase, &q.VATAmount, &q.GrandTotal,
		&q.Terms, &q.PreparedBy, &q.Date, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar cotización: %w", err)
	}
	return &q, nil
}

// GetItemsByQuotationID lista las líneas de una cotización, en orden de posición.
func (r *QuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, position, description, quantity, unit_price, line_total
		FROM quotation_items
		WHERE quotation_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de cotización: %w", err)
	}
	defer rows.Close()

	var items []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.Position, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("escanear línea: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista cotizaciones, las más recientes primero.
func (r *QuotationRepo) List(limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar cotizaciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Quotation
	for rows.Next() {
		var q entity.Quotation
		if err := rows.Scan(
			&q.ID, &q.Number, &q.Version, &q.CustomerID, &q.Title, &q.Currency, &q.Status,
			&q.DiscountKind, &q.DiscountValue, &q.VATRate,
			&q.Subtotal, &q.DiscountAmount, &q.TaxableBase, &q.VATAmount, &q.GrandTotal,
			&q.Terms, &q.PreparedBy, &q.Date, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear cotización: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del ciclo de vida del documento.
func (r *QuotationRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE quotations SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("actualizar estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByNumber indica si un número de documento ya está tomado.
func (r *QuotationRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM quotations WHERE number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar número: %w", err)
	}
	return exists, nil
}

// CountByYear cuenta las cotizaciones emitidas en un año (base de la secuencia).
func (r *QuotationRepo) CountByYear(year int) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM quotations WHERE EXTRACT(YEAR FROM date) = $1`, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar cotizaciones del año: %w", err)
	}
	return count, nil
}
