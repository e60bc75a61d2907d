package layout_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartuniit/taskflow-api/internal/domain"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
)

// rowSection construye una sección de n filas de tabla de altura fija.
func rowSection(name string, n int, height float64) layout.Section {
	units := make([]layout.Unit, n)
	for i := range units {
		units[i] = layout.Unit{Height: height, Content: layout.TableRow{}}
	}
	return layout.Section{Name: name, Units: units}
}

func totalUnits(pages []layout.Page) int {
	n := 0
	for _, p := range pages {
		n += p.UnitCount()
	}
	return n
}

func TestAssemble_PresupuestoA4(t *testing.T) {
	cfg := layout.DefaultA4()
	assert.InDelta(t, 250.0, cfg.ContentBudget(), 0.001,
		"A4 con márgenes, encabezado y pie reservados deja 250 mm de contenido")
}

// TestAssemble_CorteExactoDeFilas: 50 filas de 8 mm sobre 250 mm útiles deben
// partirse con exactamente floor(250/8) = 31 filas en la primera página.
func TestAssemble_CorteExactoDeFilas(t *testing.T) {
	sections := []layout.Section{rowSection("Líneas", 50, 8)}

	pages, err := layout.Assemble(sections, layout.DefaultA4())
	require.NoError(t, err)

	require.Len(t, pages, 2, "50 filas de 8 mm no caben en una sola página")
	assert.Equal(t, 31, pages[0].UnitCount(), "la primera página lleva floor(250/8) filas")
	assert.Equal(t, 19, pages[1].UnitCount(), "el resto continúa en la segunda página")
}

// TestAssemble_NoPierdeNiDuplicaUnidades: el conteo total de unidades en las
// páginas resultantes es igual al de la entrada, para cualquier lista de
// secciones.
func TestAssemble_NoPierdeNiDuplicaUnidades(t *testing.T) {
	cases := []struct {
		name     string
		sections []layout.Section
	}{
		{"una sección corta", []layout.Section{rowSection("A", 3, 8)}},
		{"varias secciones", []layout.Section{
			rowSection("A", 40, 8),
			rowSection("B", 17, 12.5),
			rowSection("C", 1, 3),
		}},
		{"alturas mixtas", []layout.Section{
			{Name: "Mixta", Units: []layout.Unit{
				{Height: 120, Content: layout.Paragraph{}},
				{Height: 90, Content: layout.Paragraph{}},
				{Height: 80, Content: layout.Paragraph{}},
				{Height: 4, Content: layout.TableRow{}},
			}},
		}},
		{"sección vacía intercalada", []layout.Section{
			rowSection("A", 10, 8),
			{Name: "Vacía"},
			rowSection("B", 10, 8),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := 0
			for _, s := range tc.sections {
				want += len(s.Units)
			}
			pages, err := layout.Assemble(tc.sections, layout.DefaultA4())
			require.NoError(t, err)
			assert.Equal(t, want, totalUnits(pages),
				"ninguna unidad se pierde ni se duplica al paginar")
		})
	}
}

// TestAssemble_UnidadSobredimensionada: una unidad más alta que la página
// completa queda sola en su página y no bloquea a las secciones siguientes.
func TestAssemble_UnidadSobredimensionada(t *testing.T) {
	sections := []layout.Section{
		rowSection("Antes", 2, 8),
		{Name: "Gigante", Units: []layout.Unit{
			{Height: 400, Content: layout.Paragraph{Text: "anexo"}},
		}},
		rowSection("Después", 2, 8),
	}

	pages, err := layout.Assemble(sections, layout.DefaultA4())
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, 2, pages[0].UnitCount())
	assert.Equal(t, 1, pages[1].UnitCount(), "la unidad sobredimensionada va sola en su página")
	assert.Equal(t, 1, pages[1].Placements[0].Section, "y pertenece a la sección Gigante")
	assert.Equal(t, 2, pages[2].UnitCount(), "la sección siguiente arranca en página nueva")
}

// TestAssemble_SinSecciones: cero secciones produce una única página vacía
// (solo encabezado y pie), nunca cero páginas.
func TestAssemble_SinSecciones(t *testing.T) {
	pages, err := layout.Assemble(nil, layout.DefaultA4())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 0, pages[0].UnitCount())
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 1, pages[0].Total)
}

// TestAssemble_NumeracionContigua: segunda pasada, números 1..N y Total=N en
// todas las páginas.
func TestAssemble_NumeracionContigua(t *testing.T) {
	pages, err := layout.Assemble([]layout.Section{rowSection("A", 100, 8)}, layout.DefaultA4())
	require.NoError(t, err)

	require.Greater(t, len(pages), 1)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number, "numeración 1-based contigua")
		assert.Equal(t, len(pages), p.Total, "todas las páginas conocen el total")
	}
}

// TestAssemble_OrdenDeUnidades: la página nueva arranca con la unidad que no
// cupo; dentro de cada sección los rangos son crecientes y sin huecos.
func TestAssemble_OrdenDeUnidades(t *testing.T) {
	pages, err := layout.Assemble([]layout.Section{rowSection("A", 70, 8)}, layout.DefaultA4())
	require.NoError(t, err)

	next := 0
	for _, p := range pages {
		for _, pl := range p.Placements {
			assert.Equal(t, 0, pl.Section)
			assert.Equal(t, next, pl.From, "sin huecos ni saltos entre páginas")
			next = pl.To
		}
	}
	assert.Equal(t, 70, next)
}

// ── Entrada malformada ────────────────────────────────────────────────────────

func TestAssemble_ErrorUnidadInvalida(t *testing.T) {
	for _, h := range []float64{-1, math.NaN(), math.Inf(1)} {
		sections := []layout.Section{
			{Name: "Mala", Units: []layout.Unit{{Height: h}}},
		}
		_, err := layout.Assemble(sections, layout.DefaultA4())
		assert.ErrorIs(t, err, domain.ErrInvalidSectionUnit,
			"altura %v debe rechazarse antes de paginar", h)
	}
}

func TestAssemble_ErrorPresupuestoInvalido(t *testing.T) {
	cfg := layout.Config{PageHeight: 20, TopMargin: 10, BottomMargin: 10, HeaderHeight: 5, FooterHeight: 5}
	_, err := layout.Assemble(nil, cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidPageLayout)
}

// ── Estimación de párrafos ────────────────────────────────────────────────────

func TestParagraphUnit_EstimacionConservadora(t *testing.T) {
	u := layout.ParagraphUnit("uno dos tres cuatro cinco", 10, 4.5)
	// "uno dos" / "tres" / "cuatro" / "cinco" → el wrap voraz nunca subestima.
	assert.GreaterOrEqual(t, u.Height, 3*4.5, "la estimación debe ser conservadora")
	_, ok := u.Content.(layout.Paragraph)
	assert.True(t, ok)
}

func TestParagraphUnit_TextoVacio(t *testing.T) {
	u := layout.ParagraphUnit("", 90, 4.5)
	assert.InDelta(t, 4.5, u.Height, 0.001, "un párrafo vacío ocupa una línea")
}

func TestParagraphUnit_PalabraMasLargaQueLaLinea(t *testing.T) {
	u := layout.ParagraphUnit("supercalifragilistico", 5, 4)
	assert.GreaterOrEqual(t, u.Height, 5*4.0, "21 caracteres a 5 por línea ocupan al menos 5 líneas")
}
