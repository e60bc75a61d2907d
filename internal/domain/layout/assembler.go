package layout

import (
	"math"

	"github.com/smartuniit/taskflow-api/internal/domain"
)

// Placement referencia un rango de unidades de una sección colocado en una
// página: las unidades Units[From:To] de Sections[Section].
type Placement struct {
	Section int
	From    int
	To      int
}

// Page es una página ya ensamblada. Number y Total son 1-based y se estampan
// en la segunda pasada, cuando ya se conoce el número total de páginas.
type Page struct {
	Number     int
	Total      int
	Placements []Placement
}

// UnitCount devuelve cuántas unidades atómicas contiene la página.
func (p Page) UnitCount() int {
	n := 0
	for _, pl := range p.Placements {
		n += pl.To - pl.From
	}
	return n
}

// Assemble reparte las secciones en páginas con bin-packing first-fit en dos
// pasadas: la primera pliega la secuencia lineal de unidades sobre un
// presupuesto de altura por página; la segunda estampa "Página X de N".
//
// Reglas:
//   - Las secciones no se reordenan ni se intercalan; una sección puede
//     abarcar varias páginas y la página nueva arranca con la unidad que no
//     cupo, jamás se omiten unidades.
//   - Una unidad más alta que el presupuesto completo se coloca sola en su
//     propia página (nunca se descarta ni produce un bucle infinito).
//   - Cero secciones (o secciones sin unidades) producen una única página
//     vacía con solo encabezado y pie, nunca cero páginas.
//
// Sobre entrada válida el ensamblado nunca falla. Antes de plegar se rechaza
// la entrada malformada: domain.ErrInvalidPageLayout si el presupuesto de
// contenido no es positivo y domain.ErrInvalidSectionUnit si alguna unidad
// tiene altura negativa, NaN o infinita.
func Assemble(sections []Section, cfg Config) ([]Page, error) {
	budget := cfg.ContentBudget()
	if budget <= 0 || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return nil, domain.ErrInvalidPageLayout
	}
	for _, sec := range sections {
		for _, u := range sec.Units {
			if u.Height < 0 || math.IsNaN(u.Height) || math.IsInf(u.Height, 0) {
				return nil, domain.ErrInvalidSectionUnit
			}
		}
	}

	// Primera pasada: pliegue sobre un acumulador de página local. El cursor
	// de altura vive solo en este fold, nunca se comparte entre llamadas.
	var pages []Page
	current := Page{}
	remaining := budget

	closePage := func() {
		pages = append(pages, current)
		current = Page{}
		remaining = budget
	}

	for si, sec := range sections {
		for ui, u := range sec.Units {
			if u.Height > remaining && current.UnitCount() > 0 {
				closePage()
			}
			// Si la unidad excede incluso una página completa, queda sola en
			// la página recién abierta y la siguiente unidad cerrará la página
			// porque remaining ya quedó agotado.
			appendUnit(&current, si, ui)
			remaining -= u.Height
		}
	}
	if current.UnitCount() > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}

	// Segunda pasada: numeración contigua 1..N.
	total := len(pages)
	for i := range pages {
		pages[i].Number = i + 1
		pages[i].Total = total
	}
	return pages, nil
}

// appendUnit agrega la unidad ui de la sección si a la página, extendiendo el
// último placement cuando es contiguo de la misma sección.
func appendUnit(p *Page, si, ui int) {
	if n := len(p.Placements); n > 0 {
		last := &p.Placements[n-1]
		if last.Section == si && last.To == ui {
			last.To = ui + 1
			return
		}
	}
	p.Placements = append(p.Placements, Placement{Section: si, From: ui, To: ui + 1})
}
