package quoting

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/smartuniit/taskflow-api/internal/domain/entity"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
)

// Alturas estimadas (mm) de las unidades que emiten los documentos
// comerciales. El ensamblador no tiene retroalimentación del renderer, así
// que son deliberadamente holgadas.
const (
	titleHeight     = 10
	tableHeadHeight = 8
	tableRowHeight  = 8
	keyValueHeight  = 6
	spacerHeight    = 4
)

// BuilderConfig parámetros de estimación de texto para el armado de secciones.
type BuilderConfig struct {
	CharsPerLine int     // presupuesto de caracteres por línea de párrafo
	LineHeight   float64 // mm por línea de párrafo
}

// DefaultBuilderConfig valores calibrados para A4 con fuente de 9 pt.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{CharsPerLine: 95, LineHeight: 4.5}
}

// buildQuotationSections arma las secciones de una cotización en el orden del
// documento: tabla de líneas, totales y términos. El ensamblador decide los
// cortes de página; aquí solo se declara contenido y alturas.
func buildQuotationSections(q *entity.Quotation, items []*entity.QuotationItem, cfg BuilderConfig) []layout.Section {
	sections := []layout.Section{
		lineItemsSection(toLineRows(items), q.Currency),
		totalsSection(q.Currency, q.Subtotal, q.DiscountAmount, q.TaxableBase, q.VATRate, q.VATAmount, q.GrandTotal),
	}
	if len(q.Terms) > 0 {
		sections = append(sections, clausesSection("Términos y condiciones", q.Terms, cfg))
	}
	return sections
}

// buildProposalSections: igual que la cotización más las condiciones
// adicionales y el listado de tareas entregables.
func buildProposalSections(p *entity.Proposal, items []*entity.ProposalItem, tasks []*entity.ProposalTask, cfg BuilderConfig) []layout.Section {
	rows := make([]lineRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, lineRow{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	sections := []layout.Section{
		lineItemsSection(rows, p.Currency),
		totalsSection(p.Currency, p.Subtotal, p.DiscountAmount, p.TaxableBase, p.VATRate, p.VATAmount, p.GrandTotal),
	}
	if len(p.Conditions) > 0 {
		sections = append(sections, clausesSection("Condiciones adicionales", p.Conditions, cfg))
	}
	if len(tasks) > 0 {
		sections = append(sections, tasksSection(tasks))
	}
	return sections
}

// lineRow es la fila ya formateable de la tabla de líneas.
type lineRow struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

func toLineRows(items []*entity.QuotationItem) []lineRow {
	rows := make([]lineRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, lineRow{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return rows
}

// lineItemsSection arma la tabla de líneas valorizadas: título, cabecera y
// una fila (unidad atómica) por línea.
func lineItemsSection(rows []lineRow, currency string) layout.Section {
	units := []layout.Unit{
		{Height: titleHeight, Content: layout.Title{Text: "Detalle de partidas"}},
		{Height: tableHeadHeight, Content: layout.TableHead{Cells: []layout.Cell{
			{Text: "#", Width: 1},
			{Text: "Descripción", Width: 6},
			{Text: "Cant.", Width: 1, Right: true},
			{Text: fmt.Sprintf("P. Unit. (%s)", currency), Width: 2, Right: true},
			{Text: fmt.Sprintf("Total (%s)", currency), Width: 2, Right: true},
		}}},
	}
	for i, r := range rows {
		units = append(units, layout.Unit{Height: tableRowHeight, Content: layout.TableRow{Cells: []layout.Cell{
			{Text: fmt.Sprintf("%d", i+1), Width: 1},
			{Text: r.Description, Width: 6},
			{Text: r.Quantity.String(), Width: 1, Right: true},
			{Text: r.UnitPrice.StringFixed(2), Width: 2, Right: true},
			{Text: r.LineTotal.StringFixed(2), Width: 2, Right: true},
		}}})
	}
	return layout.Section{Name: "Detalle de partidas", Units: units}
}

// totalsSection arma el bloque de totales: cada campo persiste y se imprime
// ya redondeado, por eso aquí solo se formatea, nunca se recalcula.
func totalsSection(currency string, subtotal, discount, base, vatRate, vat, grand decimal.Decimal) layout.Section {
	units := []layout.Unit{
		{Height: spacerHeight, Content: layout.Spacer{}},
		{Height: keyValueHeight, Content: layout.KeyValue{Key: "Subtotal", Value: money(subtotal, currency)}},
	}
	if !discount.IsZero() {
		units = append(units,
			layout.Unit{Height: keyValueHeight, Content: layout.KeyValue{Key: "Descuento", Value: "-" + money(discount, currency)}},
			layout.Unit{Height: keyValueHeight, Content: layout.KeyValue{Key: "Base gravable", Value: money(base, currency)}},
		)
	}
	units = append(units,
		layout.Unit{Height: keyValueHeight, Content: layout.KeyValue{
			Key:   fmt.Sprintf("IVA (%s%%)", vatRate.StringFixed(0)),
			Value: money(vat, currency),
		}},
		layout.Unit{Height: keyValueHeight, Content: layout.KeyValue{Key: "TOTAL", Value: money(grand, currency), Strong: true}},
	)
	return layout.Section{Name: "Totales", Units: units}
}

// clausesSection arma una lista de cláusulas: cada cláusula es un párrafo
// atómico con altura estimada por envoltura de texto.
func clausesSection(title string, clauses []string, cfg BuilderConfig) layout.Section {
	units := []layout.Unit{
		{Height: titleHeight, Content: layout.Title{Text: title}},
	}
	for i, c := range clauses {
		units = append(units, layout.ParagraphUnit(fmt.Sprintf("%d. %s", i+1, c), cfg.CharsPerLine, cfg.LineHeight))
	}
	return layout.Section{Name: title, Units: units}
}

// tasksSection arma la tabla de tareas entregables de la propuesta.
func tasksSection(tasks []*entity.ProposalTask) layout.Section {
	units := []layout.Unit{
		{Height: titleHeight, Content: layout.Title{Text: "Tareas entregables"}},
		{Height: tableHeadHeight, Content: layout.TableHead{Cells: []layout.Cell{
			{Text: "#", Width: 1},
			{Text: "Tarea", Width: 9},
			{Text: "Duración (días)", Width: 2, Right: true},
		}}},
	}
	for _, task := range tasks {
		duration := ""
		if task.DurationDays > 0 {
			duration = fmt.Sprintf("%d", task.DurationDays)
		}
		units = append(units, layout.Unit{Height: tableRowHeight, Content: layout.TableRow{Cells: []layout.Cell{
			{Text: fmt.Sprintf("%d", task.Position), Width: 1},
			{Text: task.Description, Width: 9},
			{Text: duration, Width: 2, Right: true},
		}}})
	}
	return layout.Section{Name: "Tareas entregables", Units: units}
}

// moneyPrinter formatea montos con separadores de miles según el locale del
// documento impreso (es: 11.100,00).
var moneyPrinter = message.NewPrinter(language.Spanish)

// money formatea un monto ya redondeado junto a su código de moneda. Nunca
// vuelve a redondear: los totales llegan fijos a 2 decimales.
func money(d decimal.Decimal, currency string) string {
	f, _ := d.Float64()
	return moneyPrinter.Sprintf("%s %.2f", currency, f)
}
