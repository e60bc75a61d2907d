// Package pdf rasteriza con Maroto v2 los documentos comerciales ya
// ensamblados (cotizaciones y propuestas).
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  COTIZACIÓN N° + versión + fecha         │
//	│  ───────────────────────────────────────────────────────────│
//	│  CONTENIDO: unidades de la página según el ensamblador      │
//	│  (títulos, tablas, totales, párrafos)                        │
//	│  ───────────────────────────────────────────────────────────│
//	│  FOOTER: Página X de N  │  generado el …                     │
//	└─────────────────────────────────────────────────────────────┘
//
// El renderer no pagina: recibe las páginas ya cortadas por el ensamblador
// y emite una página Maroto explícita por cada una. Así el corte de página
// queda determinado por una sola fuente de verdad.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smartuniit/taskflow-api/internal/application/quoting"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa quoting.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	layoutCfg layout.Config
}

// NewMarotoPDFGenerator construye el generador con la misma geometría de
// página que usó el ensamblador.
func NewMarotoPDFGenerator(layoutCfg layout.Config) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{layoutCfg: layoutCfg}
}

// Render emite una página Maroto por cada página ensamblada y devuelve los
// bytes del PDF.
func (g *MarotoPDFGenerator) Render(
	_ context.Context,
	meta quoting.DocumentMeta,
	sections []layout.Section,
	pages []layout.Page,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(g.layoutCfg.TopMargin).WithBottomMargin(g.layoutCfg.BottomMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s %s", meta.DocType, meta.Number), true).
		WithAuthor(meta.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	for _, p := range pages {
		pg := page.New()
		pg.Add(g.headerRows(meta)...)
		pg.Add(contentRows(sections, p)...)
		pg.Add(footerRow(meta, p))
		m.AddPages(pg)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Encabezado y pie ──────────────────────────────────────────────────────────

// headerRows: empresa (izq) y tipo de documento + número + fecha (der). Se
// repite en todas las páginas dentro de la altura reservada por el layout.
func (g *MarotoPDFGenerator) headerRows(meta quoting.DocumentMeta) []core.Row {
	docLabel := fmt.Sprintf("%s N° %s", meta.DocType, meta.Number)
	if meta.Version > 1 {
		docLabel = fmt.Sprintf("%s  (rev. %d)", docLabel, meta.Version)
	}
	return []core.Row{
		row.New(g.layoutCfg.HeaderHeight - 1).Add(
			col.New(7).Add(
				text.New(meta.CompanyName, props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
				text.New("Cliente: "+meta.CustomerName, props.Text{
					Size: 9, Top: 9, Color: colorGray,
				}),
			),
			col.New(5).Add(
				text.New(docLabel, props.Text{
					Style: fontstyle.Bold, Size: 11, Align: align.Right,
					Color: colorPrimary, Top: 1,
				}),
				text.New("Fecha: "+meta.Date.Format("02/01/2006"), props.Text{
					Size: 8, Align: align.Right, Top: 9, Color: colorGray,
				}),
			),
		),
		line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

// footerRow: "Página X de N" más la marca de generación.
func footerRow(meta quoting.DocumentMeta, p layout.Page) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Generado el %s", meta.GeneratedAt.Format("02/01/2006 15:04")),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Página %d de %d", p.Number, p.Total),
			props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 2},
		)),
	)
}

// ── Contenido ─────────────────────────────────────────────────────────────────

// contentRows resuelve los placements de la página contra las secciones y
// emite una fila Maroto por unidad. La altura de la fila es la altura que el
// ensamblador presupuestó para la unidad: lo estimado y lo dibujado coinciden.
func contentRows(sections []layout.Section, p layout.Page) []core.Row {
	var rows []core.Row
	for _, pl := range p.Placements {
		units := sections[pl.Section].Units[pl.From:pl.To]
		for _, u := range units {
			rows = append(rows, unitRow(u))
		}
	}
	return rows
}

func unitRow(u layout.Unit) core.Row {
	switch c := u.Content.(type) {
	case layout.Title:
		return row.New(u.Height).Add(col.New(12).Add(
			text.New(c.Text, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
			}),
		))
	case layout.TableHead:
		r := row.New(u.Height).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
		return r.Add(headCols(c.Cells)...)
	case layout.TableRow:
		return row.New(u.Height).Add(bodyCols(c.Cells)...)
	case layout.Paragraph:
		return row.New(u.Height).Add(col.New(12).Add(
			text.New(c.Text, props.Text{Size: 8.5, Top: 1}),
		))
	case layout.KeyValue:
		return keyValueRow(c, u.Height)
	case layout.Spacer:
		return row.New(u.Height)
	default:
		// Contenido desconocido: espacio en blanco de la altura presupuestada.
		return row.New(u.Height)
	}
}

func headCols(cells []layout.Cell) []core.Col {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		a := align.Left
		if c.Right {
			a = align.Right
		}
		cols = append(cols, col.New(c.Width).Add(text.New(c.Text, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			Top:   2, Left: 1, Right: 1,
		})))
	}
	return cols
}

func bodyCols(cells []layout.Cell) []core.Col {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		a := align.Left
		if c.Right {
			a = align.Right
		}
		cols = append(cols, col.New(c.Width).Add(text.New(c.Text, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return cols
}

// keyValueRow: fila del bloque de totales, alineada a la derecha. La fila
// Strong (TOTAL) va resaltada en el color primario.
func keyValueRow(kv layout.KeyValue, height float64) core.Row {
	size := 9.0
	style := fontstyle.Normal
	color := (*props.Color)(nil)
	if kv.Strong {
		size = 10.5
		style = fontstyle.Bold
		color = colorPrimary
	}
	return row.New(height).Add(
		col.New(6),
		col.New(3).Add(text.New(kv.Key, props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right,
			Color: color, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New(kv.Value, props.Text{
			Style: style, Size: size, Align: align.Right,
			Color: color, Right: 1, Top: 1,
		})),
	)
}
