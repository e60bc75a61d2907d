package repository

import "github.com/smartuniit/taskflow-api/internal/domain/entity"

// QuotationRepository define el puerto de persistencia para Quotation,
// sus líneas y sus cláusulas de términos.
type QuotationRepository interface {
	Create(quotation *entity.Quotation) error
	CreateItem(item *entity.QuotationItem) error
	GetByID(id string) (*entity.Quotation, error)
	GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error)
	List(limit, offset int) ([]*entity.Quotation, error)
	// UpdateStatus cambia solo el estado del ciclo de vida del documento.
	UpdateStatus(id, status string) error
	// ExistsByNumber y CountByYear dan soporte a la numeración de documentos
	// (secuencia por año con reintento acotado ante colisiones).
	ExistsByNumber(number string) (bool, error)
	CountByYear(year int) (int, error)
}
