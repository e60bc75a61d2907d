package quoting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeQuotationRepo struct {
	quotation *entity.Quotation
	items     []*entity.QuotationItem
}

func (f *fakeQuotationRepo) Create(*entity.Quotation) error         { return nil }
func (f *fakeQuotationRepo) CreateItem(*entity.QuotationItem) error { return nil }
func (f *fakeQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	if f.quotation != nil && f.quotation.ID == id {
		return f.quotation, nil
	}
	return nil, nil
}
func (f *fakeQuotationRepo) GetItemsByQuotationID(string) ([]*entity.QuotationItem, error) {
	return f.items, nil
}
func (f *fakeQuotationRepo) List(int, int) ([]*entity.Quotation, error) { return nil, nil }
func (f *fakeQuotationRepo) UpdateStatus(string, string) error          { return nil }
func (f *fakeQuotationRepo) ExistsByNumber(string) (bool, error)        { return false, nil }
func (f *fakeQuotationRepo) CountByYear(int) (int, error)               { return 0, nil }

type fakeCustomerRepo struct {
	customer *entity.Customer
}

func (f *fakeCustomerRepo) Create(*entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if f.customer != nil && f.customer.ID == id {
		return f.customer, nil
	}
	return nil, nil
}
func (f *fakeCustomerRepo) GetByTaxID(string) (*entity.Customer, error)  { return nil, nil }
func (f *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error)    { return nil, nil }
func (f *fakeCustomerRepo) Update(*entity.Customer) error                { return nil }
func (f *fakeCustomerRepo) Delete(string) error                          { return nil }

type fakeGenerator struct {
	err      error
	lastMeta DocumentMeta
	pages    []layout.Page
}

func (f *fakeGenerator) Render(_ context.Context, meta DocumentMeta, _ []layout.Section, pages []layout.Page) ([]byte, error) {
	f.lastMeta = meta
	f.pages = pages
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func newExportFixture(genErr error) (*ExportUseCase, *fakeGenerator) {
	q, items := testQuotation()
	gen := &fakeGenerator{err: genErr}
	uc := NewExportUseCase(
		&fakeQuotationRepo{quotation: q, items: items},
		nil,
		&fakeCustomerRepo{customer: &entity.Customer{ID: q.CustomerID, Name: "ACME"}},
		gen,
		layout.DefaultA4(),
		DefaultBuilderConfig(),
		"TaskFlow",
	)
	uc.now = func() time.Time { return fixedNow }
	return uc, gen
}

// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadQuotationPDF_NombreDeterminista(t *testing.T) {
	uc, gen := newExportFixture(nil)

	artifact, err := uc.DownloadQuotationPDF(context.Background(), "q1")
	require.NoError(t, err)

	assert.Equal(t, "COTIZACION_Red_de_fibra_fase_2_2026-05-02.pdf", artifact.Filename,
		"el nombre se deriva solo de tipo, título saneado y fecha ISO")
	assert.NotEmpty(t, artifact.Bytes)
	assert.Equal(t, "COTIZACION", gen.lastMeta.DocType)
	assert.Equal(t, "ACME", gen.lastMeta.CustomerName)
	require.NotEmpty(t, gen.pages, "el generador recibe las páginas ya ensambladas")
	assert.Equal(t, 1, gen.pages[0].Number)
}

func TestDownloadQuotationPDF_NoEncontrada(t *testing.T) {
	uc, _ := newExportFixture(nil)
	_, err := uc.DownloadQuotationPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDownloadQuotationPDF_FalloDeRasterizacion: el fallo del colaborador
// externo se reporta como ErrExportFailed y no se produce artefacto parcial.
func TestDownloadQuotationPDF_FalloDeRasterizacion(t *testing.T) {
	uc, _ := newExportFixture(errors.New("sin memoria"))

	artifact, err := uc.DownloadQuotationPDF(context.Background(), "q1")
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Nil(t, artifact, "o se exporta completo o no hay artefacto")
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Red de fibra":        "Red_de_fibra",
		"fase #2 (urgente)":   "fase_2_urgente",
		"---":                 "---",
		"  bordes  ":          "bordes",
	}
	for in, want := range cases {
		assert.Equal(t, want, sanitizeFilename(in), "entrada: %q", in)
	}
}
