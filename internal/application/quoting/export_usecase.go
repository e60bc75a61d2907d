package quoting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
	"github.com/smartuniit/taskflow-api/internal/domain/repository"
)

// ExportUseCase ejecuta el pipeline de exportación de un documento:
// registro → secciones → páginas ensambladas → rasterización PDF.
//
// Todo el pipeline es síncrono y sin estado compartido: cada invocación
// recibe sus propias secciones y páginas, así que exportaciones concurrentes
// no requieren sincronización. El documento ensamblado no se persiste; vive
// solo hasta que se producen los bytes del artefacto.
type ExportUseCase struct {
	quotationRepo repository.QuotationRepository
	proposalRepo  repository.ProposalRepository
	customerRepo  repository.CustomerRepository
	generator     DocumentPDFGenerator
	pageCfg       layout.Config
	builderCfg    BuilderConfig
	companyName   string
	now           func() time.Time
}

// NewExportUseCase construye el caso de uso inyectando el rasterizador y la
// geometría de página.
func NewExportUseCase(
	quotationRepo repository.QuotationRepository,
	proposalRepo repository.ProposalRepository,
	customerRepo repository.CustomerRepository,
	generator DocumentPDFGenerator,
	pageCfg layout.Config,
	builderCfg BuilderConfig,
	companyName string,
) *ExportUseCase {
	return &ExportUseCase{
		quotationRepo: quotationRepo,
		proposalRepo:  proposalRepo,
		customerRepo:  customerRepo,
		generator:     generator,
		pageCfg:       pageCfg,
		builderCfg:    builderCfg,
		companyName:   companyName,
		now:           time.Now,
	}
}

// DownloadQuotationPDF genera el PDF de una cotización.
//
// Retorna:
//   - (*Artifact, nil)        si todo sale bien.
//   - domain.ErrNotFound      si la cotización no existe.
//   - domain.ErrExportFailed  (envuelto) si el rasterizador falla; no se
//     produce ningún artefacto parcial.
func (uc *ExportUseCase) DownloadQuotationPDF(ctx context.Context, id string) (*Artifact, error) {
	q, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("export: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, fmt.Errorf("export: obtener líneas: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(q.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("export: obtener cliente: %w", err)
	}

	sections := buildQuotationSections(q, items, uc.builderCfg)
	meta := uc.metaFor("COTIZACION", q.Number, q.Version, q.Title, q.Currency, customer, q.PreparedBy, q.Date)
	return uc.renderArtifact(ctx, meta, sections)
}

// DownloadProposalPDF genera el PDF de una propuesta (incluye condiciones
// adicionales y tareas entregables).
func (uc *ExportUseCase) DownloadProposalPDF(ctx context.Context, id string) (*Artifact, error) {
	p, err := uc.proposalRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("export: obtener propuesta: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.proposalRepo.GetItemsByProposalID(id)
	if err != nil {
		return nil, fmt.Errorf("export: obtener líneas: %w", err)
	}
	tasks, err := uc.proposalRepo.GetTasksByProposalID(id)
	if err != nil {
		return nil, fmt.Errorf("export: obtener tareas: %w", err)
	}
	customer, err := uc.customerRepo.GetByID(p.CustomerID)
	if err != nil || customer == nil {
		return nil, fmt.Errorf("export: obtener cliente: %w", err)
	}

	sections := buildProposalSections(p, items, tasks, uc.builderCfg)
	meta := uc.metaFor("PROPUESTA", p.Number, p.Version, p.Title, p.Currency, customer, p.PreparedBy, p.Date)
	return uc.renderArtifact(ctx, meta, sections)
}

// renderArtifact ensambla las páginas y delega la rasterización. El documento
// es o bien exportado completo o la operación falla sin artefacto.
func (uc *ExportUseCase) renderArtifact(ctx context.Context, meta DocumentMeta, sections []layout.Section) (*Artifact, error) {
	pages, err := layout.Assemble(sections, uc.pageCfg)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.generator.Render(ctx, meta, sections, pages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	return &Artifact{
		Filename: artifactFilename(meta),
		Bytes:    pdfBytes,
	}, nil
}

func (uc *ExportUseCase) metaFor(docType, number string, version int, title, currency string, customer *entity.Customer, preparedBy string, date time.Time) DocumentMeta {
	return DocumentMeta{
		DocType:       docType,
		Number:        number,
		Version:       version,
		Title:         title,
		Currency:      currency,
		CompanyName:   uc.companyName,
		CustomerName:  customer.Name,
		CustomerTaxID: customer.TaxID,
		PreparedBy:    preparedBy,
		Date:          date,
		GeneratedAt:   uc.now(),
	}
}

// artifactFilename deriva el nombre del archivo de forma determinista:
// {TipoDoc}_{Título}_{FechaISO}.pdf
func artifactFilename(meta DocumentMeta) string {
	return fmt.Sprintf("%s_%s_%s.pdf", meta.DocType, sanitizeFilename(meta.Title), meta.Date.Format("2006-01-02"))
}

// sanitizeFilename conserva letras, dígitos y guiones; todo lo demás colapsa
// a guiones bajos (un espacio o símbolo por guion bajo, sin repetir).
func sanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
