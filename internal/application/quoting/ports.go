package quoting

import (
	"context"
	"time"

	"github.com/smartuniit/taskflow-api/internal/domain/layout"
	"github.com/smartuniit/taskflow-api/internal/domain/repository"
)

// DocumentMeta son los metadatos globales del documento que el renderer
// estampa en el encabezado de cada página y en el nombre del archivo.
type DocumentMeta struct {
	DocType       string // COTIZACION | PROPUESTA
	Number        string
	Version       int
	Title         string
	Currency      string
	CompanyName   string
	CustomerName  string
	CustomerTaxID string
	PreparedBy    string
	Date          time.Time
	GeneratedAt   time.Time
}

// TxRunner ejecuta una función con repositorios atados a una transacción:
// la cabecera del documento y sus filas hijas se insertan de forma atómica.
type TxRunner interface {
	RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository) error) error
	RunProposal(ctx context.Context, fn func(repo repository.ProposalRepository) error) error
}

// DocumentPDFGenerator rasteriza las páginas ya ensambladas. Es el
// colaborador externo del pipeline: recibe las secciones y la lista de
// páginas con sus rangos de unidades y devuelve los bytes del PDF.
type DocumentPDFGenerator interface {
	Render(ctx context.Context, meta DocumentMeta, sections []layout.Section, pages []layout.Page) ([]byte, error)
}

// Artifact es el resultado opaco de una exportación: bytes del PDF más el
// nombre de archivo determinista derivado de los metadatos.
type Artifact struct {
	Filename string
	Bytes    []byte
}
