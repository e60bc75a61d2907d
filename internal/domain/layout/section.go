// Package layout implementa el ensamblador de documentos: parte una lista
// ordenada de secciones en páginas de tamaño fijo mediante bin-packing
// first-fit, sin reordenar secciones ni partir unidades atómicas.
//
// El modelo es un intermedio estructurado e independiente del rasterizador:
// el renderer PDF (infrastructure/pdf) consume las páginas ya ensambladas y
// no tiene retroalimentación hacia el layout (una sola pasada hacia adelante),
// por lo que las alturas estimadas deben ser conservadoras.
package layout

import (
	"math"
	"strings"
)

// Config define la geometría de la página en milímetros.
type Config struct {
	PageHeight   float64 // A4: 297
	TopMargin    float64
	BottomMargin float64
	HeaderHeight float64 // reservado en cada página para el encabezado
	FooterHeight float64 // reservado en cada página para el pie ("Página X de N")
}

// ContentBudget devuelve la altura disponible para contenido por página.
func (c Config) ContentBudget() float64 {
	return c.PageHeight - c.TopMargin - c.BottomMargin - c.HeaderHeight - c.FooterHeight
}

// DefaultA4 es la geometría usada por los documentos de la aplicación:
// 297 - 10 - 10 - 18 - 9 = 250 mm útiles de contenido.
func DefaultA4() Config {
	return Config{
		PageHeight:   297,
		TopMargin:    10,
		BottomMargin: 10,
		HeaderHeight: 18,
		FooterHeight: 9,
	}
}

// Unit es la unidad atómica de contenido: se coloca completa en una página,
// nunca se parte. Height es la altura estimada en mm.
type Unit struct {
	Height  float64
	Content Content
}

// Section es un bloque nombrado y ordenado de unidades. Una sección puede
// quedar repartida en varias páginas, siempre en orden y sin saltarse
// unidades.
type Section struct {
	Name  string
	Units []Unit
}

// Content es el payload renderizable de una unidad. Los tipos concretos
// cubren lo que emiten los documentos comerciales; el renderer hace type
// switch sobre ellos.
type Content interface{ content() }

// Title es un encabezado de sección.
type Title struct {
	Text string
}

// Cell es una celda de tabla. Width usa la grilla de 12 columnas.
type Cell struct {
	Text  string
	Width int
	Right bool // alineación derecha (columnas numéricas)
}

// TableHead es la fila de cabecera de una tabla.
type TableHead struct {
	Cells []Cell
}

// TableRow es una fila de datos de una tabla.
type TableRow struct {
	Cells []Cell
}

// Paragraph es un párrafo de texto corrido (cláusulas, términos).
type Paragraph struct {
	Text string
}

// KeyValue es una fila etiqueta/valor del bloque de totales.
type KeyValue struct {
	Key    string
	Value  string
	Strong bool // resalta la fila del total a pagar
}

// Spacer es espacio vertical en blanco.
type Spacer struct{}

func (Title) content()     {}
func (TableHead) content() {}
func (TableRow) content()  {}
func (Paragraph) content() {}
func (KeyValue) content()  {}
func (Spacer) content()    {}

// ParagraphUnit construye la unidad de un párrafo estimando su altura por
// envoltura de texto: se cuentan las líneas que resultan de partir el texto
// en el presupuesto de caracteres por línea y se multiplica por la altura de
// línea. La estimación es conservadora (redondea líneas hacia arriba) porque
// el renderer no puede devolver el párrafo al ensamblador si no cabe.
func ParagraphUnit(text string, charsPerLine int, lineHeight float64) Unit {
	lines := estimateLines(text, charsPerLine)
	return Unit{
		Height:  float64(lines) * lineHeight,
		Content: Paragraph{Text: text},
	}
}

// estimateLines cuenta líneas con un word-wrap voraz: una palabra que no cabe
// en el resto de la línea abre línea nueva; una palabra más larga que la
// línea ocupa techo(len/ancho) líneas.
func estimateLines(text string, charsPerLine int) int {
	if charsPerLine <= 0 {
		return 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return 1
	}
	lines := 1
	current := 0
	for _, w := range words {
		wl := len([]rune(w))
		if wl > charsPerLine {
			// Palabra más larga que la línea: se parte en bloques completos.
			if current > 0 {
				lines++
			}
			lines += int(math.Ceil(float64(wl)/float64(charsPerLine))) - 1
			current = wl % charsPerLine
			if current == 0 {
				current = charsPerLine
			}
			continue
		}
		needed := wl
		if current > 0 {
			needed++ // espacio separador
		}
		if current+needed > charsPerLine {
			lines++
			current = wl
		} else {
			current += needed
		}
	}
	return lines
}
