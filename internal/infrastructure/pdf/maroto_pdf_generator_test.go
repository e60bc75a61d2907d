package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartuniit/taskflow-api/internal/application/quoting"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
)

func testSections() []layout.Section {
	return []layout.Section{
		{
			Name: "Detalle de partidas",
			Units: []layout.Unit{
				{Height: 10, Content: layout.Title{Text: "Detalle de partidas"}},
				{Height: 8, Content: layout.TableHead{Cells: []layout.Cell{
					{Text: "#", Width: 1}, {Text: "Descripción", Width: 7},
					{Text: "Cant.", Width: 2, Right: true}, {Text: "Importe", Width: 2, Right: true},
				}}},
				{Height: 8, Content: layout.TableRow{Cells: []layout.Cell{
					{Text: "1", Width: 1}, {Text: "Excavación de zanja", Width: 7},
					{Text: "195", Width: 2, Right: true}, {Text: "SAR 9.750,00", Width: 2, Right: true},
				}}},
			},
		},
		{
			Name: "Totales",
			Units: []layout.Unit{
				{Height: 6, Content: layout.KeyValue{Key: "Subtotal", Value: "SAR 11.100,00"}},
				{Height: 6, Content: layout.KeyValue{Key: "TOTAL", Value: "SAR 10.850,25", Strong: true}},
				{Height: 4, Content: layout.Spacer{}},
				{Height: 9, Content: layout.Paragraph{Text: "Validez de la oferta: 30 días."}},
			},
		},
	}
}

// TestRender_ProduceUnPDF: humo — el pipeline completo sección → página →
// bytes produce un PDF bien formado con tantas páginas como ensambló el layout.
func TestRender_ProduceUnPDF(t *testing.T) {
	sections := testSections()
	cfg := layout.DefaultA4()
	pages, err := layout.Assemble(sections, cfg)
	require.NoError(t, err)

	meta := quoting.DocumentMeta{
		DocType:      "COTIZACION",
		Number:       "QT-2026-0001",
		Version:      2,
		Title:        "Red de fibra",
		Currency:     "SAR",
		CompanyName:  "TaskFlow",
		CustomerName: "ACME",
		Date:         time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		GeneratedAt:  time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewMarotoPDFGenerator(cfg).Render(context.Background(), meta, sections, pages)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]), "los bytes empiezan con la firma PDF")
}

// TestRender_PaginaVacia: una lista de páginas sin contenido (documento sin
// secciones) igualmente rasteriza encabezado y pie.
func TestRender_PaginaVacia(t *testing.T) {
	cfg := layout.DefaultA4()
	pages, err := layout.Assemble(nil, cfg)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	meta := quoting.DocumentMeta{
		DocType: "PROPUESTA", Number: "PR-2026-0001",
		CompanyName: "TaskFlow", CustomerName: "ACME",
		Date: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	out, err := NewMarotoPDFGenerator(cfg).Render(context.Background(), meta, nil, pages)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
